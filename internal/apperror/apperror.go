package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the command layer can report it consistently.
type Kind string

const (
	// KindValidation means the caller supplied bad input.
	KindValidation Kind = "validation"
	// KindDuplicate means a uniqueness constraint would be violated.
	KindDuplicate Kind = "duplicate"
	// KindNotFound means a referenced user, organization or project does not exist.
	KindNotFound Kind = "not_found"
	// KindUnauthenticated means there is no usable session or the credentials are wrong.
	KindUnauthenticated Kind = "unauthenticated"
	// KindForbidden means the current user may not act on the resource.
	KindForbidden Kind = "forbidden"
	// KindStorage means reading, parsing or writing a backing file failed.
	KindStorage Kind = "storage"
	// KindInternal covers everything else.
	KindInternal Kind = "internal"
)

// Error is a categorized error. The message comes from the wrapped error;
// the kind travels alongside it.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// Duplicate creates a duplicate error.
func Duplicate(format string, args ...any) *Error {
	return newError(KindDuplicate, format, args...)
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// Unauthenticated creates an authentication error.
func Unauthenticated(format string, args ...any) *Error {
	return newError(KindUnauthenticated, format, args...)
}

// Forbidden creates an access error.
func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

// Storage creates a storage error.
func Storage(format string, args ...any) *Error {
	return newError(KindStorage, format, args...)
}

// Internal creates an internal error.
func Internal(format string, args ...any) *Error {
	return newError(KindInternal, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ExitCode maps an error to a process exit code. Every failure exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
