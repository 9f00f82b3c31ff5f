package timefmt

import "errors"

// ErrInvalidTimestamp is returned when a timestamp cannot be formatted or
// its text does not follow the canonical grammar.
var ErrInvalidTimestamp = errors.New("invalid timestamp")
