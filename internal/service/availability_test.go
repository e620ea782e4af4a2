package service

import (
	"testing"
	"time"

	"github.com/lshigami/Procyon/internal/model"
)

// gateExam: starts 09:00 UTC, 60 minutes per attempt, window open 3 hours.
// Availability ends 12:00, pre-access opens 08:45.
func gateExam() *model.Exam {
	return &model.Exam{
		ID:             1,
		StartTime:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Duration:       60,
		ActiveDuration: 3,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestEvaluateAccessUpcoming(t *testing.T) {
	d := EvaluateAccess(at(8, 30), gateExam(), nil)
	if d.Allowed {
		t.Fatal("expected access denied before the pre-access window")
	}
	if d.State != StateUpcoming || d.Reason != ReasonTooEarly {
		t.Fatalf("got state=%s reason=%s", d.State, d.Reason)
	}
	// Pre-access opens at 08:45, 15 minutes away.
	if d.MinutesUntilOpen != 15 {
		t.Fatalf("MinutesUntilOpen = %d, want 15", d.MinutesUntilOpen)
	}
}

func TestEvaluateAccessPreAccessBoundary(t *testing.T) {
	// Exactly at the pre-access instant entry is permitted.
	d := EvaluateAccess(at(8, 45), gateExam(), nil)
	if !d.Allowed {
		t.Fatalf("expected access at pre-access start, got state=%s reason=%s", d.State, d.Reason)
	}
	if d.State != StateAvailable {
		t.Fatalf("state = %s, want %s", d.State, StateAvailable)
	}
}

func TestEvaluateAccessFullDuration(t *testing.T) {
	d := EvaluateAccess(at(10, 0), gateExam(), nil)
	if !d.Allowed {
		t.Fatalf("expected access, got reason=%s", d.Reason)
	}
	if want := at(11, 0); !d.EffectiveEnd.Equal(want) {
		t.Fatalf("EffectiveEnd = %v, want %v", d.EffectiveEnd, want)
	}
	if d.RemainingMinutes != 60 {
		t.Fatalf("RemainingMinutes = %d, want 60", d.RemainingMinutes)
	}
}

func TestEvaluateAccessTruncatedToWindow(t *testing.T) {
	// Starting at 11:50 the nominal cutoff 12:50 is truncated to 12:00,
	// leaving a 10-minute attempt.
	d := EvaluateAccess(at(11, 50), gateExam(), nil)
	if !d.Allowed {
		t.Fatalf("expected truncated access, got reason=%s", d.Reason)
	}
	if want := at(12, 0); !d.EffectiveEnd.Equal(want) {
		t.Fatalf("EffectiveEnd = %v, want %v", d.EffectiveEnd, want)
	}
	if d.RemainingMinutes != 10 {
		t.Fatalf("RemainingMinutes = %d, want 10", d.RemainingMinutes)
	}
}

func TestEvaluateAccessNotEnoughTime(t *testing.T) {
	// 11:56 leaves only 4 minutes, below the minimum usable window.
	d := EvaluateAccess(at(11, 56), gateExam(), nil)
	if d.Allowed {
		t.Fatal("expected denial inside the final minutes")
	}
	if d.State != StateExpired || d.Reason != ReasonNotEnoughTime {
		t.Fatalf("got state=%s reason=%s", d.State, d.Reason)
	}
}

func TestEvaluateAccessMinWindowBoundary(t *testing.T) {
	// Exactly 5 minutes left is still a usable attempt.
	d := EvaluateAccess(at(11, 55), gateExam(), nil)
	if !d.Allowed {
		t.Fatalf("expected access with exactly the minimum window, got reason=%s", d.Reason)
	}
	if d.RemainingMinutes != 5 {
		t.Fatalf("RemainingMinutes = %d, want 5", d.RemainingMinutes)
	}
}

func TestEvaluateAccessExpiredWindow(t *testing.T) {
	d := EvaluateAccess(at(12, 1), gateExam(), nil)
	if d.Allowed || d.State != StateExpired || d.Reason != ReasonExpired {
		t.Fatalf("got allowed=%v state=%s reason=%s", d.Allowed, d.State, d.Reason)
	}
}

func TestEvaluateAccessCompletedWinsOverExpired(t *testing.T) {
	// A completed attempt reports completed even long after the window.
	result := &model.Result{Status: model.ResultCompleted}
	d := EvaluateAccess(at(15, 0), gateExam(), result)
	if d.State != StateCompleted || d.Reason != ReasonCompleted {
		t.Fatalf("got state=%s reason=%s", d.State, d.Reason)
	}
	if d.Allowed {
		t.Fatal("completed attempts must not be re-enterable")
	}
}

func TestEvaluateAccessResume(t *testing.T) {
	started := at(10, 0)
	result := &model.Result{Status: model.ResultInProgress, StartTime: &started}
	d := EvaluateAccess(at(10, 30), gateExam(), result)
	if !d.Allowed || !d.Resumed {
		t.Fatalf("expected resumable attempt, got allowed=%v resumed=%v reason=%s", d.Allowed, d.Resumed, d.Reason)
	}
	if d.State != StateInProgress {
		t.Fatalf("state = %s, want %s", d.State, StateInProgress)
	}
	// The cutoff is anchored to the original start, not the resume instant.
	if want := at(11, 0); !d.EffectiveEnd.Equal(want) {
		t.Fatalf("EffectiveEnd = %v, want %v", d.EffectiveEnd, want)
	}
	if d.RemainingMinutes != 30 {
		t.Fatalf("RemainingMinutes = %d, want 30", d.RemainingMinutes)
	}
}

func TestEvaluateAccessResumeAfterDeadline(t *testing.T) {
	started := at(9, 0)
	result := &model.Result{Status: model.ResultInProgress, StartTime: &started}
	d := EvaluateAccess(at(10, 30), gateExam(), result)
	if d.Allowed {
		t.Fatal("expected denial once the attempt's own deadline has passed")
	}
	if d.Reason != ReasonNotEnoughTime {
		t.Fatalf("reason = %s, want %s", d.Reason, ReasonNotEnoughTime)
	}
}
