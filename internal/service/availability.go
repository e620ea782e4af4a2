package service

import (
	"math"
	"time"

	"github.com/lshigami/Procyon/internal/model"
)

// AttemptState is the state of a (student, exam) pair as seen by the
// availability gate.
type AttemptState string

const (
	StateUpcoming   AttemptState = "upcoming"
	StateAvailable  AttemptState = "available"
	StateInProgress AttemptState = "inprogress"
	StateExpired    AttemptState = "expired"
	StateCompleted  AttemptState = "completed"
)

// Machine-readable denial reasons.
const (
	ReasonOK            = "ok"
	ReasonTooEarly      = "too_early"
	ReasonExpired       = "window_expired"
	ReasonNotEnoughTime = "not_enough_time"
	ReasonCompleted     = "already_completed"
)

// MinAttemptWindow is the smallest usable slice of the availability window.
// A student granted less than this is turned away rather than handed a
// throwaway attempt.
const MinAttemptWindow = 5 * time.Minute

// AccessDecision is the gate's verdict for one (student, exam) pair at one
// instant.
type AccessDecision struct {
	State           AttemptState
	Allowed         bool
	Reason          string
	StartTime       time.Time
	AvailabilityEnd time.Time
	// EffectiveEnd is the attempt cutoff: nominal duration from the attempt
	// start, truncated to the availability window. Zero unless Allowed.
	EffectiveEnd time.Time
	// RemainingMinutes is how long the student has from now, floor-rounded.
	RemainingMinutes int
	// MinutesUntilOpen is set only in StateUpcoming: minutes until the
	// pre-access grace window opens, ceil-rounded.
	MinutesUntilOpen int
	// Resumed is true when an inprogress attempt already exists.
	Resumed bool
}

// EvaluateAccess decides whether a student may start, continue or view an
// exam at the given instant. It is the single source of truth for both the
// read (check-access) and write (start) paths; result may be nil when the
// student has no attempt yet.
//
// The checks run in a deliberate order: a completed attempt wins over an
// expired window, and an expired window wins over everything else.
func EvaluateAccess(now time.Time, exam *model.Exam, result *model.Result) AccessDecision {
	availEnd := exam.AvailabilityEnd()
	d := AccessDecision{
		StartTime:       exam.StartTime,
		AvailabilityEnd: availEnd,
	}

	if result != nil && result.Status == model.ResultCompleted {
		d.State = StateCompleted
		d.Reason = ReasonCompleted
		return d
	}

	if now.After(availEnd) {
		d.State = StateExpired
		d.Reason = ReasonExpired
		return d
	}

	preAccess := exam.PreAccessStart()
	if now.Before(preAccess) {
		d.State = StateUpcoming
		d.Reason = ReasonTooEarly
		d.MinutesUntilOpen = int(math.Ceil(preAccess.Sub(now).Minutes()))
		return d
	}

	resumed := result != nil && result.Status == model.ResultInProgress && result.StartTime != nil

	var effectiveEnd time.Time
	if resumed {
		effectiveEnd = result.StartTime.Add(exam.AttemptDuration())
	} else {
		effectiveEnd = now.Add(exam.AttemptDuration())
	}
	if effectiveEnd.After(availEnd) {
		effectiveEnd = availEnd
	}

	granted := effectiveEnd.Sub(now)
	if granted < MinAttemptWindow {
		d.State = StateExpired
		d.Reason = ReasonNotEnoughTime
		return d
	}

	if resumed {
		d.State = StateInProgress
	} else {
		d.State = StateAvailable
	}
	d.Allowed = true
	d.Reason = ReasonOK
	d.EffectiveEnd = effectiveEnd
	d.RemainingMinutes = int(granted.Minutes())
	d.Resumed = resumed
	return d
}
