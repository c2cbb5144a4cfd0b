package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen    = 255
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordLen = 72
)

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email must be a valid address", ErrValidation)
	}
	return email, nil
}

func validateUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < minUsernameLen || n > maxUsernameLen {
		return "", fmt.Errorf("%w: username must be %d-%d characters", ErrValidation, minUsernameLen, maxUsernameLen)
	}
	return name, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordLen)
	}
	return nil
}

// requiredText trims value and checks it is non-empty and at most max runes
// (max <= 0 means unbounded).
func requiredText(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if max > 0 && utf8.RuneCountInString(v) > max {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, field, max)
	}
	return v, nil
}

func requireID(field string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: %s must be a positive integer", ErrValidation, field)
	}
	return nil
}
