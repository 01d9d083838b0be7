package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when no credentials are stored.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrMissingIdentity is returned when a submission is attempted without a user id.
	ErrMissingIdentity = errors.New("user identity missing")
	// ErrSessionTerminated is returned when a quiz session has already submitted.
	ErrSessionTerminated = errors.New("quiz session already terminated")
	// ErrSubmissionInFlight is returned when a submission is already underway.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrSectionNotFound indicates the requested section does not exist remotely.
	ErrSectionNotFound = errors.New("section not found")
	// ErrNoCountdown indicates no persisted countdown exists for a section.
	ErrNoCountdown = errors.New("no countdown state for section")
)
