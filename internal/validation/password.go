package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrWeakPassword    = errors.New("weak_password")
	ErrPasswordTooLong = errors.New("password_too_long")
)

// MaxPasswordBytes is where bcrypt stops reading.
const MaxPasswordBytes = 72

// ValidatePassword enforces minLength characters and the bcrypt byte limit.
func ValidatePassword(password string, minLength int) error {
	if utf8.RuneCountInString(password) < minLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrWeakPassword, minLength)
	}

	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must not exceed %d bytes", ErrPasswordTooLong, MaxPasswordBytes)
	}

	return nil
}
