package service

import "errors"

// ErrHistoryIDMismatch is returned when a stored ciphertext decrypts to an
// entry whose id differs from the id it is stored under, which means the
// payload was moved between rows.
var ErrHistoryIDMismatch = errors.New("history id mismatch")
