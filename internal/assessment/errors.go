package assessment

import "errors"

var (
	ErrUnknownKind  = errors.New("unknown assessment kind")
	ErrUnknownField = errors.New("unknown field")
	ErrOutOfRange   = errors.New("value out of range")
	ErrNotInteger   = errors.New("value must be a whole number")
)
