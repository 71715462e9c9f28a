package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrDecodingFailed     = errors.New("could not decode data")
	ErrPersistenceFailed  = errors.New("could not persist data")
	ErrMissingSession     = errors.New("no active session")
	ErrMissingUser        = errors.New("user not available")
	ErrCancelled          = errors.New("operation cancelled")
)

// kindError pairs a taxonomy sentinel with the error that caused it.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error { return []error{e.kind, e.cause} }

// Wrap returns an error matching both kind and cause with errors.Is.
// A nil cause is allowed and yields kind alone.
func Wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &kindError{kind: kind, cause: cause}
}

// Message maps an error to the short text shown to end users.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "The requested item does not exist."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrEmailAlreadyUsed):
		return "That email is already registered."
	case errors.Is(err, ErrDecodingFailed):
		return "Could not read the stored data."
	case errors.Is(err, ErrPersistenceFailed):
		return "Could not save. Please try again."
	case errors.Is(err, ErrMissingSession):
		return "Please log in to continue."
	case errors.Is(err, ErrMissingUser):
		return "The user is not available."
	case errors.Is(err, ErrCancelled):
		return "The operation was cancelled."
	default:
		return "Something went wrong. Please try again."
	}
}
