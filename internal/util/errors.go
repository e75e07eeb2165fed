package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrIndicatorNotFound = errors.New("indicator not found")
	ErrEntryNotFound     = errors.New("data entry not found")
	ErrGoalInUse         = errors.New("goal still has indicators")
	ErrIndicatorInUse    = errors.New("indicator still has data entries")

	// ErrInvalidInput marks a validation failure the actor can fix and retry,
	// e.g. a rejection without a reason or a malformed period.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorizedTransition marks a (status, role, action) combination the
	// workflow table does not allow. Distinct from ErrInvalidInput so the API
	// layer can answer 403 instead of 400.
	ErrUnauthorizedTransition = errors.New("unauthorized workflow transition")

	// ErrEntryModified is returned when the optimistic status check fails at
	// the persistence boundary: someone else decided the entry first.
	ErrEntryModified = errors.New("entry was modified concurrently")
)
