package service

import (
	"errors"
	"fmt"
)

// Sentinel errors the controllers map onto the HTTP taxonomy.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStudentBlocked     = errors.New("account blocked")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateTitle     = errors.New("an exam with this title already exists")
	ErrExamLocked         = errors.New("exam can no longer be edited")
	ErrExamInactive       = errors.New("exam is not active")
	ErrAlreadyCompleted   = errors.New("exam already completed")
	ErrAttemptNotStarted  = errors.New("exam attempt has not been started")
)

// AccessDeniedError carries the gate's full decision so handlers can return
// the machine-readable reason and timestamps alongside the 403.
type AccessDeniedError struct {
	Decision AccessDecision
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("exam access denied: %s", e.Decision.Reason)
}
