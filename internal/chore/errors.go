package chore

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes engine failures. All precondition violations are
// reported synchronously to the caller; nothing is retried inside the engine.
type ErrorKind string

const (
	// KindNotFound means an unknown chore, member, or completion id.
	KindNotFound ErrorKind = "not_found"

	// KindConflict means a pending completion already exists for the chore.
	KindConflict ErrorKind = "conflict"

	// KindInvalidState means confirm/reject was called on a completion that
	// is no longer pending.
	KindInvalidState ErrorKind = "invalid_state"

	// KindValidation means malformed input, e.g. non-positive points.
	KindValidation ErrorKind = "validation"
)

// Error is a typed engine error. Use Kind or errors.As to branch on it.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Kind extracts the ErrorKind from err, unwrapping as needed. It returns ""
// for non-engine errors.
func Kind(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
