package codec

import "errors"

// Sentinel errors returned by the history codec. Use [errors.Is] to match.
var (
	// ErrMalformedRecord is returned when a decrypted buffer does not follow
	// any known history layout: too few fields, a field of the wrong type,
	// a truncated buffer, invalid UTF-8 or trailing bytes.
	ErrMalformedRecord = errors.New("malformed decrypted history")

	// ErrUnsupportedFormatVersion is returned when a buffer declares more
	// fields than this version understands, i.e. it was written by newer
	// software.
	ErrUnsupportedFormatVersion = errors.New("history from a newer, unsupported format version")

	// ErrInvalidUTF8 is returned by the encoder when a string field is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("history field is not valid utf-8")

	// ErrMalformedBlob is returned when an encrypted history wire blob cannot
	// be decoded.
	ErrMalformedBlob = errors.New("malformed encrypted history blob")
)
