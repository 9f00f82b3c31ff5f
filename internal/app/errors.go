package app

import "errors"

// ErrInvalidInput is returned when seal input is not a JSON history entry.
var ErrInvalidInput = errors.New("invalid history input")
