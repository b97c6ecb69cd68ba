package validators

import (
	"errors"
	"unicode"
)

var (
	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameTooLong = errors.New("username is too long")
	ErrUsernameInvalid = errors.New("username may only contain letters, digits, dots, dashes and underscores")
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) > 150 {
		return ErrUsernameTooLong
	}

	for _, r := range u {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}

		switch r {
		case '.', '-', '_', '@', '+':
			continue
		}

		return ErrUsernameInvalid
	}

	return nil
}
