// Package validation holds input validation rules for account data.
package validation

import (
	"errors"
	"net/mail"
)

const minPasswordLength = 8

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)

// Email checks that the address parses as RFC 5322.
func Email(address string) error {
	if _, err := mail.ParseAddress(address); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Password checks the minimum password policy.
func Password(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}
