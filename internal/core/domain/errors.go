package domain

import "errors"

// ErrorKind classifies a domain error by how the user recovers from it.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindAuth       ErrorKind = "auth"
)

// Error is a recoverable domain failure surfaced next to the form that raised it.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrMissingFields    = &Error{Kind: KindValidation, Message: "missing fields"}
	ErrInvalidEmail     = &Error{Kind: KindValidation, Message: "invalid email"}
	ErrPasswordTooShort = &Error{Kind: KindValidation, Message: "password too short"}
	ErrPasswordMismatch = &Error{Kind: KindValidation, Message: "password mismatch"}
	ErrMissingItemID    = &Error{Kind: KindValidation, Message: "missing item id"}
	ErrEmptyCart        = &Error{Kind: KindValidation, Message: "cart is empty"}

	ErrEmailExists = &Error{Kind: KindConflict, Message: "email exists"}

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "invalid credentials"}
)

// KindOf returns the kind of the first domain error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
