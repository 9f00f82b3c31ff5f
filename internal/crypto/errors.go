package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrInvalidKey is returned when a key file or key string is not one of
	// the recognized encodings, or does not hold exactly [KeySize] bytes.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrKeyAlreadyExists is returned by [KeyStore.Create] when a key file
	// is already present at the configured path.
	ErrKeyAlreadyExists = errors.New("encryption key already exists")

	// ErrDecryptionFailed is returned when a ciphertext does not
	// authenticate under the given key and nonce: wrong key, corrupted or
	// truncated ciphertext, or a nonce of the wrong size. Retrying with the
	// same inputs cannot succeed.
	ErrDecryptionFailed = errors.New("history decryption failed")
)
