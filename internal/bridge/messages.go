package bridge

import (
	"errors"

	"github.com/letsfood/storefront/internal/core/domain"
)

const (
	signInPrompt = "Sign in"

	msgAccountCreated = "Account created, signing you in"
	msgSignedIn       = "Signed in"
	msgSignedOut      = "Signed out"
	msgCheckout       = "Order received"
	msgUnexpected     = "Something went wrong, please try again"
)

var friendly = map[*domain.Error]string{
	domain.ErrMissingFields:      "Please fill all fields",
	domain.ErrInvalidEmail:       "Invalid email",
	domain.ErrPasswordTooShort:   "Password must be at least 6 characters",
	domain.ErrPasswordMismatch:   "Passwords do not match",
	domain.ErrEmailExists:        "An account with that email already exists",
	domain.ErrInvalidCredentials: "Email or password incorrect",
	domain.ErrMissingItemID:      "That item cannot be added",
	domain.ErrEmptyCart:          "Your cart is empty",
}

// UserText turns an error into the text shown next to a form. Errors that
// are not domain errors get a generic line; their detail stays in the logs.
func UserText(form Form, err error) string {
	if form == FormSignIn && errors.Is(err, domain.ErrMissingFields) {
		return "Enter email and password"
	}
	var de *domain.Error
	if errors.As(err, &de) {
		if text, ok := friendly[de]; ok {
			return text
		}
		return de.Message
	}
	return msgUnexpected
}

func errorMessage(form Form, err error) *Message {
	return &Message{Form: form, Kind: MessageError, Text: UserText(form, err)}
}

func successMessage(form Form, text string) *Message {
	return &Message{Form: form, Kind: MessageSuccess, Text: text}
}
