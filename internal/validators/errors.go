package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidHistory   = errors.New("invalid history")
	ErrInvalidText      = errors.New("text field is not valid utf-8")
	ErrInvalidTimestamp = errors.New("timestamp cannot be encoded")
	ErrDuplicateID      = errors.New("duplicate history id in batch")
	ErrEmptyBatch       = errors.New("history batch cannot be empty")
)
