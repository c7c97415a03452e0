package settings

import (
	"errors"
)

var (
	ErrInvalidEmail = errors.New("invalid e-mail address")
	ErrEmptyValue   = errors.New("a value is required")
	ErrUnknownKind  = errors.New("unknown setting")
	ErrInvalidBool  = errors.New("expected yes or no")
)
