// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"

	"github.com/MKhiriev/go-hist-keeper/internal/codec"
	"github.com/MKhiriev/go-hist-keeper/internal/config"
	"github.com/MKhiriev/go-hist-keeper/internal/crypto"
	"github.com/MKhiriev/go-hist-keeper/internal/service"
	"github.com/MKhiriev/go-hist-keeper/internal/store"
	"github.com/MKhiriev/go-hist-keeper/internal/timefmt"
	"github.com/MKhiriev/go-hist-keeper/internal/validators"
)

// Msg* constants are the human-readable hints printed next to a failed
// command. The underlying error is always printed as well.
const (
	// MsgKeyMismatch is shown when stored history does not authenticate
	// under the installation key.
	MsgKeyMismatch = "history was encrypted with a different key or has been corrupted; restore the original key file"

	// MsgInvalidKey is shown when the key file exists but cannot be decoded.
	// The file is left untouched.
	MsgInvalidKey = "key file is unreadable; it was not replaced, restore it from a backup"

	// MsgKeyAlreadyExists is shown when key init finds an existing key.
	MsgKeyAlreadyExists = "a key already exists; it was not overwritten"

	// MsgNewerFormat is shown for history written by a newer release.
	MsgNewerFormat = "history was written by a newer version of histkeeper; upgrade to read it"

	// MsgMalformedHistory is shown when decrypted history does not decode.
	MsgMalformedHistory = "history entry authenticated but is malformed"

	// MsgNotFound is shown when a requested id is not stored.
	MsgNotFound = "no history entry with that id"

	// MsgInvalidConfig is shown when configuration does not validate.
	MsgInvalidConfig = "configuration is invalid"

	// MsgInvalidInput is shown when seal input cannot be used.
	MsgInvalidInput = "input history is invalid"

	// MsgInternalError is shown for anything else.
	MsgInternalError = "unexpected error"
)

// UserMessage returns the hint for err. Order matters: a record whose
// timestamp fails to parse is malformed first and an invalid timestamp
// second.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return MsgKeyMismatch
	case errors.Is(err, crypto.ErrInvalidKey):
		return MsgInvalidKey
	case errors.Is(err, crypto.ErrKeyAlreadyExists):
		return MsgKeyAlreadyExists
	case errors.Is(err, codec.ErrUnsupportedFormatVersion):
		return MsgNewerFormat
	case errors.Is(err, codec.ErrMalformedRecord), errors.Is(err, codec.ErrMalformedBlob),
		errors.Is(err, service.ErrHistoryIDMismatch):
		return MsgMalformedHistory
	case errors.Is(err, store.ErrRecordNotFound):
		return MsgNotFound
	case errors.Is(err, config.ErrInvalidCryptoConfigs),
		errors.Is(err, config.ErrInvalidStorageConfigs),
		errors.Is(err, config.ErrInvalidLogConfigs),
		errors.Is(err, config.ErrInvalidWorkerConfigs):
		return MsgInvalidConfig
	case errors.Is(err, codec.ErrInvalidUTF8), errors.Is(err, timefmt.ErrInvalidTimestamp),
		errors.Is(err, validators.ErrInvalidHistory), errors.Is(err, ErrInvalidInput):
		return MsgInvalidInput
	default:
		return MsgInternalError
	}
}
