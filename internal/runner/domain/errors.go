package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTestID marks a session opened without a test identifier. There is
	// nothing to retry: the link itself is broken.
	ErrMissingTestID = errors.New("test id missing from link")

	// ErrEmptyOrInvalidData marks a definition response that decoded but carried
	// nothing usable.
	ErrEmptyOrInvalidData = errors.New("empty or invalid definition data")

	// ErrRecorderBusy is returned when a recording is started while another one
	// is still active. Only one microphone capture may exist at a time.
	ErrRecorderBusy = errors.New("a recording is already in progress")

	// ErrNoActiveRecording is returned when a stop arrives for a question that
	// has no capture in progress.
	ErrNoActiveRecording = errors.New("no active recording for question")
)

// ErrorKind classifies a session failure by how the user can react to it.
type ErrorKind int

const (
	// KindFatal failures have no retry path (missing identifier).
	KindFatal ErrorKind = iota
	// KindRetryable failures offer an explicit retry of the originating fetch.
	KindRetryable
	// KindSoft failures degrade silently to the prior state; the user is only
	// nudged, never interrupted.
	KindSoft
	// KindSubmission failures keep the entered answers and re-enable submit.
	KindSubmission
	// KindPermission failures block the action without corrupting state.
	KindPermission
)

// SessionError carries a classified failure with a user-facing message in the
// operator's language. Technical detail stays in Err and in the diagnostic log.
type SessionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SessionError) Unwrap() error { return e.Err }

// Retryable reports whether the failure offers a retry affordance.
func (e *SessionError) Retryable() bool {
	return e.Kind == KindRetryable || e.Kind == KindSubmission
}

func retryableError(message string, err error) *SessionError {
	return &SessionError{Kind: KindRetryable, Message: message, Err: err}
}

func softError(message string, err error) *SessionError {
	return &SessionError{Kind: KindSoft, Message: message, Err: err}
}

func submissionError(message string, err error) *SessionError {
	return &SessionError{Kind: KindSubmission, Message: message, Err: err}
}

func permissionError(message string, err error) *SessionError {
	return &SessionError{Kind: KindPermission, Message: message, Err: err}
}
