package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

func newStudentExamFixture(now time.Time) (*studentExamService, *fakeExamRepo, *fakeResultRepo, *fakeResultViewRepo) {
	examRepo := newFakeExamRepo()
	resultRepo := newFakeResultRepo()
	viewRepo := &fakeResultViewRepo{}
	svc := &studentExamService{
		examRepo:       examRepo,
		resultRepo:     resultRepo,
		resultViewRepo: viewRepo,
		now:            func() time.Time { return now },
	}
	return svc, examRepo, resultRepo, viewRepo
}

func seedGateExam(examRepo *fakeExamRepo) *model.Exam {
	exam := gateExam()
	exam.IsActive = true
	exam.Questions = []model.Question{
		{ID: 1, ExamID: 1, Text: "q1", CorrectOption: 2, Marks: 1, OrderInExam: 1},
		{ID: 2, ExamID: 1, Text: "q2", CorrectOption: 0, Marks: 1, OrderInExam: 2},
	}
	return examRepo.add(exam)
}

func TestStartExamIsIdempotent(t *testing.T) {
	svc, examRepo, _, _ := newStudentExamFixture(at(10, 0))
	seedGateExam(examRepo)

	first, err := svc.StartExam(7, 1)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if first.Resumed {
		t.Fatal("first start should not be a resume")
	}

	svc.now = func() time.Time { return at(10, 10) }
	second, err := svc.StartExam(7, 1)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !second.Resumed {
		t.Fatal("second start should resume the existing attempt")
	}
	if second.ResultID != first.ResultID {
		t.Fatalf("result id changed across starts: %d then %d", first.ResultID, second.ResultID)
	}
	if !second.EndTime.Equal(first.EndTime) {
		t.Fatalf("deadline moved across starts: %v then %v", first.EndTime, second.EndTime)
	}
}

func TestStartExamStripsCorrectOptions(t *testing.T) {
	svc, examRepo, _, _ := newStudentExamFixture(at(10, 0))
	seedGateExam(examRepo)

	resp, err := svc.StartExam(7, 1)
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(resp.Questions))
	}
}

func TestStartExamAfterCompletion(t *testing.T) {
	svc, examRepo, resultRepo, _ := newStudentExamFixture(at(10, 0))
	seedGateExam(examRepo)
	resultRepo.put(&model.Result{ExamID: 1, StudentID: 7, Status: model.ResultCompleted})

	if _, err := svc.StartExam(7, 1); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
	}
}

func TestStartExamOutsideWindow(t *testing.T) {
	svc, examRepo, _, _ := newStudentExamFixture(at(13, 0))
	seedGateExam(examRepo)

	_, err := svc.StartExam(7, 1)
	var denied *AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("err = %v, want AccessDeniedError", err)
	}
	if denied.Decision.Reason != ReasonExpired {
		t.Fatalf("reason = %s, want %s", denied.Decision.Reason, ReasonExpired)
	}
}

func TestStartExamInactiveExam(t *testing.T) {
	svc, examRepo, _, _ := newStudentExamFixture(at(10, 0))
	exam := seedGateExam(examRepo)
	exam.IsActive = false

	if _, err := svc.StartExam(7, 1); !errors.Is(err, ErrExamInactive) {
		t.Fatalf("err = %v, want ErrExamInactive", err)
	}
}

func TestStartExamConcurrentDuplicateResumes(t *testing.T) {
	svc, examRepo, resultRepo, _ := newStudentExamFixture(at(10, 0))
	seedGateExam(examRepo)

	// The unique index rejects our insert; a competing request has already
	// created the attempt by the time we retry the lookup.
	started := at(9, 59)
	ended := at(10, 59)
	resultRepo.onCreate = func(result *model.Result) error {
		resultRepo.onCreate = nil
		resultRepo.put(&model.Result{
			ExamID:    1,
			StudentID: 7,
			Status:    model.ResultInProgress,
			StartTime: &started,
			EndTime:   &ended,
		})
		return gorm.ErrDuplicatedKey
	}

	resp, err := svc.StartExam(7, 1)
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if !resp.Resumed {
		t.Fatal("losing racer should resume the winner's attempt")
	}
	if !resp.StartTime.Equal(started) {
		t.Fatalf("StartTime = %v, want the winner's %v", resp.StartTime, started)
	}
}

func TestGetResultRequiresCompletion(t *testing.T) {
	svc, examRepo, resultRepo, _ := newStudentExamFixture(at(10, 0))
	seedGateExam(examRepo)

	if _, err := svc.GetResult(7, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no attempt: err = %v, want ErrNotFound", err)
	}

	started := at(10, 0)
	resultRepo.put(&model.Result{ExamID: 1, StudentID: 7, Status: model.ResultInProgress, StartTime: &started})
	if _, err := svc.GetResult(7, 1); !errors.Is(err, ErrAttemptNotStarted) {
		t.Fatalf("in progress: err = %v, want ErrAttemptNotStarted", err)
	}
}

func TestGetResultRecordsView(t *testing.T) {
	svc, examRepo, resultRepo, viewRepo := newStudentExamFixture(at(13, 0))
	seedGateExam(examRepo)
	resultRepo.put(&model.Result{
		ID:         42,
		ExamID:     1,
		StudentID:  7,
		Status:     model.ResultCompleted,
		TotalScore: 1.5,
		Percentage: 75,
	})

	detail, err := svc.GetResult(7, 1)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if detail.TotalScore != 1.5 || detail.Percentage != 75 {
		t.Fatalf("detail = %+v", detail)
	}
	if len(viewRepo.views) != 1 || viewRepo.views[0].ResultID != 42 {
		t.Fatalf("views = %+v, want one row for result 42", viewRepo.views)
	}
}

func TestListExamsCategorizes(t *testing.T) {
	svc, examRepo, resultRepo, _ := newStudentExamFixture(at(10, 0))
	seedGateExam(examRepo)
	examRepo.add(&model.Exam{
		ID:             2,
		Title:          "later",
		StartTime:      at(14, 0),
		Duration:       30,
		ActiveDuration: 1,
		IsActive:       true,
	})
	examRepo.add(&model.Exam{
		ID:             3,
		Title:          "done",
		StartTime:      at(9, 0),
		Duration:       30,
		ActiveDuration: 3,
		IsActive:       true,
	})
	resultRepo.put(&model.Result{ExamID: 3, StudentID: 7, Status: model.ResultCompleted, Percentage: 50})

	out, err := svc.ListExams(7)
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(out.Available) != 1 || len(out.Upcoming) != 1 || len(out.Completed) != 1 {
		t.Fatalf("available=%d upcoming=%d completed=%d ended=%d",
			len(out.Available), len(out.Upcoming), len(out.Completed), len(out.Ended))
	}
	if out.Completed[0].Percentage == nil || *out.Completed[0].Percentage != 50 {
		t.Fatalf("completed entry = %+v, want percentage 50", out.Completed[0])
	}
}
