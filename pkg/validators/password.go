package validators

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordEmpty      = errors.New("no password provided")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrPasswordAllNumeric = errors.New("password can't be entirely numeric")
	ErrPasswordTooCommon  = errors.New("this password is too common")
)

// Short list of passwords we refuse outright. Matched
// case-insensitively against the whole input.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"letmein123":  {},
	"iloveyou1":   {},
	"admin123":    {},
	"welcome1":    {},
}

// PasswordValidator enforces the password complexity policy: minimum
// length, not purely numeric and not a known common password.
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 64 {
		return ErrPasswordTooLong
	}

	numeric := true
	for _, r := range p {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}

	if numeric {
		return ErrPasswordAllNumeric
	}

	if _, ok := commonPasswords[strings.ToLower(p)]; ok {
		return ErrPasswordTooCommon
	}

	return nil
}
