package game

import "errors"

// ValidationError is bad input from a client: rejected synchronously,
// never retried, surfaced only to the acting client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// PreconditionError is a request that is well-formed but illegal in the
// current state (wrong phase, not a member, not the host, voting for
// your own image).
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func preconditionErr(message string) error {
	return &PreconditionError{Message: message}
}

// ErrNotFound covers lookups of rooms, rounds, and players that do not
// exist (or no longer exist).
var ErrNotFound = errors.New("not found")

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPrecondition reports whether err is a state precondition failure.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
