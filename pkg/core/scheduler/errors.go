package scheduler

import "fmt"

// PreconditionError means roster generation cannot proceed at all: the
// reference data needed to build any roster is missing. These surface
// verbatim to the caller. Missing candidates for individual slots are not
// precondition failures; those slots are skipped with a warning instead.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

// InputError means a caller-supplied parameter was malformed or out of
// range. It is returned before any store access happens.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func inputf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}
