// Package apperr classifies business errors so the HTTP layer can map them
// to status codes in one place.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation covers malformed input, bad time windows, unknown list
	// states and duplicate-approve attempts.
	Validation Kind = iota
	// NotFound covers unresolved entity ids.
	NotFound
	// Ownership means the caller is not the owner where ownership is required.
	Ownership
	// WrongCustomer means the caller is neither booker nor owner of a booking.
	WrongCustomer
	// SelfBooking means the booker tried to book their own item.
	SelfBooking
	// Conflict covers duplicate email.
	Conflict
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newf(Validation, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(NotFound, format, args...)
}

func Ownershipf(format string, args ...any) *Error {
	return newf(Ownership, format, args...)
}

func WrongCustomerf(format string, args ...any) *Error {
	return newf(WrongCustomer, format, args...)
}

func SelfBookingf(format string, args ...any) *Error {
	return newf(SelfBooking, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return newf(Conflict, format, args...)
}

// KindOf extracts the classification of err. ok is false for unclassified
// errors, which callers treat as internal.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
