package service

// In-memory fakes satisfying the repository interfaces. Lookups mirror the
// real layer's contract: a miss returns gorm.ErrRecordNotFound.

import (
	"strings"

	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

type fakeExamRepo struct {
	exams  map[uint]*model.Exam
	nextID uint

	attempted map[[2]uint]bool
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{
		exams:     map[uint]*model.Exam{},
		nextID:    1,
		attempted: map[[2]uint]bool{},
	}
}

func (r *fakeExamRepo) add(exam *model.Exam) *model.Exam {
	if exam.ID == 0 {
		exam.ID = r.nextID
		r.nextID++
	}
	r.exams[exam.ID] = exam
	return exam
}

func (r *fakeExamRepo) Create(exam *model.Exam) error {
	r.add(exam)
	return nil
}

func (r *fakeExamRepo) Update(exam *model.Exam) error {
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) ReplaceQuestions(exam *model.Exam, questions []model.Question) error {
	for i := range questions {
		questions[i].ExamID = exam.ID
	}
	exam.Questions = questions
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) DeleteCascade(examID uint) error {
	delete(r.exams, examID)
	return nil
}

func (r *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (r *fakeExamRepo) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	return r.FindByID(id)
}

func (r *fakeExamRepo) FindAllByOwner(adminID uint) ([]struct {
	model.Exam
	QuestionCount int
}, error) {
	var out []struct {
		model.Exam
		QuestionCount int
	}
	for _, exam := range r.exams {
		if exam.CreatedByID != adminID {
			continue
		}
		out = append(out, struct {
			model.Exam
			QuestionCount int
		}{Exam: *exam, QuestionCount: len(exam.Questions)})
	}
	return out, nil
}

func (r *fakeExamRepo) FindAllActive() ([]struct {
	model.Exam
	QuestionCount int
}, error) {
	var out []struct {
		model.Exam
		QuestionCount int
	}
	for _, exam := range r.exams {
		if !exam.IsActive {
			continue
		}
		out = append(out, struct {
			model.Exam
			QuestionCount int
		}{Exam: *exam, QuestionCount: len(exam.Questions)})
	}
	return out, nil
}

func (r *fakeExamRepo) FindRecentActive(limit int) ([]model.Exam, error) {
	var out []model.Exam
	for _, exam := range r.exams {
		if !exam.IsActive || len(out) >= limit {
			continue
		}
		out = append(out, *exam)
	}
	return out, nil
}

func (r *fakeExamRepo) AddAttemptedStudent(examID, studentID uint) error {
	r.attempted[[2]uint{examID, studentID}] = true
	return nil
}

type fakeResultRepo struct {
	byKey  map[[2]uint]*model.Result
	nextID uint

	// onCreate, when set, intercepts Create. Used to simulate the unique
	// index rejecting a concurrent duplicate start.
	onCreate func(result *model.Result) error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{byKey: map[[2]uint]*model.Result{}, nextID: 1}
}

func (r *fakeResultRepo) put(result *model.Result) *model.Result {
	if result.ID == 0 {
		result.ID = r.nextID
		r.nextID++
	}
	r.byKey[[2]uint{result.ExamID, result.StudentID}] = result
	return result
}

func (r *fakeResultRepo) Create(result *model.Result) error {
	if r.onCreate != nil {
		return r.onCreate(result)
	}
	if _, exists := r.byKey[[2]uint{result.ExamID, result.StudentID}]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.put(result)
	return nil
}

func (r *fakeResultRepo) Update(result *model.Result) error {
	r.byKey[[2]uint{result.ExamID, result.StudentID}] = result
	return nil
}

func (r *fakeResultRepo) FindByExamAndStudent(examID, studentID uint) (*model.Result, error) {
	result, ok := r.byKey[[2]uint{examID, studentID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (r *fakeResultRepo) FindAllByExam(examID uint) ([]model.Result, error) {
	var out []model.Result
	for _, result := range r.byKey {
		if result.ExamID == examID {
			out = append(out, *result)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) CountCompleted() (int64, error) {
	var n int64
	for _, result := range r.byKey {
		if result.Status == model.ResultCompleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeResultRepo) AveragePercentage() (float64, error) {
	var sum float64
	var n int
	for _, result := range r.byKey {
		if result.Status == model.ResultCompleted {
			sum += result.Percentage
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (r *fakeResultRepo) TopPerformers(limit int) ([]dto.TopPerformerDTO, error) {
	return nil, nil
}

type fakeStudentRepo struct {
	students map[uint]*model.Student
	nextID   uint
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[uint]*model.Student{}, nextID: 1}
}

func (r *fakeStudentRepo) add(student *model.Student) *model.Student {
	if student.ID == 0 {
		student.ID = r.nextID
		r.nextID++
	}
	r.students[student.ID] = student
	return student
}

func (r *fakeStudentRepo) Create(student *model.Student) error {
	r.add(student)
	return nil
}

func (r *fakeStudentRepo) CreateBatch(students []model.Student) error {
	for i := range students {
		st := students[i]
		r.add(&st)
	}
	return nil
}

func (r *fakeStudentRepo) Update(student *model.Student) error {
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) FindByID(id uint) (*model.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) FindByStudentID(studentID string) (*model.Student, error) {
	for _, student := range r.students {
		if student.StudentID == studentID {
			return student, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) FindByIDs(ids []uint) ([]model.Student, error) {
	var out []model.Student
	for _, id := range ids {
		if student, ok := r.students[id]; ok {
			out = append(out, *student)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) FindAllByOwner(adminID uint) ([]model.Student, error) {
	var out []model.Student
	for _, student := range r.students {
		if student.CreatedByID == adminID {
			out = append(out, *student)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) ExistingEmailsLower() (map[string]bool, error) {
	out := map[string]bool{}
	for _, student := range r.students {
		out[strings.ToLower(student.Email)] = true
	}
	return out, nil
}

func (r *fakeStudentRepo) ExistingStudentIDs() (map[string]bool, error) {
	out := map[string]bool{}
	for _, student := range r.students {
		out[student.StudentID] = true
	}
	return out, nil
}

type fakeViolationRepo struct {
	events []model.ViolationEvent
}

func (r *fakeViolationRepo) Create(event *model.ViolationEvent) error {
	event.ID = uint(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

type fakeResultViewRepo struct {
	views []model.ResultView
}

func (r *fakeResultViewRepo) Create(view *model.ResultView) error {
	view.ID = uint(len(r.views) + 1)
	r.views = append(r.views, *view)
	return nil
}
