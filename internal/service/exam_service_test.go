package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Procyon/internal/dto"
)

func newExamFixture(now time.Time) (*examService, *fakeExamRepo, *fakeResultRepo) {
	examRepo := newFakeExamRepo()
	resultRepo := newFakeResultRepo()
	svc := &examService{
		examRepo:   examRepo,
		resultRepo: resultRepo,
		now:        func() time.Time { return now },
	}
	return svc, examRepo, resultRepo
}

func examCreateReq(start time.Time) dto.ExamCreateDTO {
	return dto.ExamCreateDTO{
		Title:          "Midterm",
		StartTime:      start,
		Duration:       60,
		ActiveDuration: 3,
		Questions: []dto.QuestionCreateDTO{
			{Text: "q1", Options: []string{"a", "b", "c", "d"}, CorrectOption: pick(0), Marks: 4},
			{Text: "q2", Options: []string{"a", "b", "c", "d"}, CorrectOption: pick(1)}, // marks default to 1
		},
	}
}

func TestCreateExamDerivesTotalMarks(t *testing.T) {
	svc, examRepo, _ := newExamFixture(at(8, 0))

	resp, err := svc.CreateExam(1, examCreateReq(at(9, 0)))
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if resp.TotalMarks != 5 {
		t.Fatalf("TotalMarks = %v, want 5 (4 + defaulted 1)", resp.TotalMarks)
	}
	if !resp.IsActive {
		t.Fatal("new exams start active")
	}

	stored, _ := examRepo.FindByID(resp.ID)
	if stored.Questions[1].Marks != 1 {
		t.Fatalf("defaulted marks = %v, want 1", stored.Questions[1].Marks)
	}
	if stored.Questions[0].OrderInExam != 1 || stored.Questions[1].OrderInExam != 2 {
		t.Fatalf("question order = %d, %d", stored.Questions[0].OrderInExam, stored.Questions[1].OrderInExam)
	}
}

func TestCreateExamRejectsBadOptionCount(t *testing.T) {
	svc, _, _ := newExamFixture(at(8, 0))
	req := examCreateReq(at(9, 0))
	req.Questions[0].Options = []string{"a", "b"}

	if _, err := svc.CreateExam(1, req); err == nil {
		t.Fatal("expected an error for a question without exactly four options")
	}
}

func TestUpdateExamLockedAfterStart(t *testing.T) {
	svc, _, _ := newExamFixture(at(8, 0))
	resp, err := svc.CreateExam(1, examCreateReq(at(9, 0)))
	if err != nil {
		t.Fatal(err)
	}

	// Exactly at the start instant editing is already locked.
	svc.now = func() time.Time { return at(9, 0) }
	title := "renamed"
	if _, err := svc.UpdateExam(1, resp.ID, dto.ExamUpdateDTO{Title: &title}); !errors.Is(err, ErrExamLocked) {
		t.Fatalf("err = %v, want ErrExamLocked", err)
	}
}

func TestUpdateExamReplacesQuestionsAndRecomputesTotal(t *testing.T) {
	svc, examRepo, _ := newExamFixture(at(8, 0))
	resp, err := svc.CreateExam(1, examCreateReq(at(9, 0)))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateExam(1, resp.ID, dto.ExamUpdateDTO{
		Questions: []dto.QuestionCreateDTO{
			{Text: "only", Options: []string{"a", "b", "c", "d"}, CorrectOption: pick(3), Marks: 2},
		},
	})
	if err != nil {
		t.Fatalf("UpdateExam: %v", err)
	}
	if updated.TotalMarks != 2 {
		t.Fatalf("TotalMarks = %v, want 2", updated.TotalMarks)
	}
	stored, _ := examRepo.FindByID(resp.ID)
	if len(stored.Questions) != 1 {
		t.Fatalf("stored %d questions, want 1", len(stored.Questions))
	}
}

func TestExamOwnershipHidesForeignExams(t *testing.T) {
	svc, _, _ := newExamFixture(at(8, 0))
	resp, err := svc.CreateExam(1, examCreateReq(at(9, 0)))
	if err != nil {
		t.Fatal(err)
	}

	// Another admin sees not-found rather than forbidden.
	if _, err := svc.GetExam(2, resp.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteExam(2, resp.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestToggleActive(t *testing.T) {
	svc, _, _ := newExamFixture(at(8, 0))
	resp, err := svc.CreateExam(1, examCreateReq(at(9, 0)))
	if err != nil {
		t.Fatal(err)
	}

	toggled, err := svc.ToggleActive(1, resp.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected the exam to be deactivated")
	}
}
