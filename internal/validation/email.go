package validation

import (
	"errors"
	"net/mail"
)

var ErrInvalidEmail = errors.New("invalid email address")

// ValidateEmail checks length and RFC 5322 syntax. The address must be bare,
// without a display name.
func ValidateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
