package errors

import (
	stderrors "errors"
)

// Error kinds returned by the moderation core. Callers compare with errors.Is.
var (
	ErrNotFound           = stderrors.New("not found")
	ErrOutOfRange         = stderrors.New("index out of range")
	ErrDeliveryFailure    = stderrors.New("delivery failed")
	ErrStorageUnavailable = stderrors.New("storage unavailable")

	// ErrNoWarnings matches both ErrNotFound and ErrOutOfRange: any index is
	// out of range for a member without warnings.
	ErrNoWarnings error = &kindError{
		msg:   "member has no warnings",
		kinds: []error{ErrNotFound, ErrOutOfRange},
	}
)

type kindError struct {
	msg   string
	kinds []error
}

func (e *kindError) Error() string   { return e.msg }
func (e *kindError) Unwrap() []error { return e.kinds }

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is errors.As from the standard library
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// New is errors.New from the standard library
func New(text string) error {
	return stderrors.New(text)
}
