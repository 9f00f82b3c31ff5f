package crypto

import "github.com/MKhiriev/go-hist-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyStore hands out the symmetric key of the local installation.
//
// There is exactly one key per installation. It is created once and then
// only ever read: replacing it would make every history entry encrypted
// under the old key permanently unreadable, so no method overwrites an
// existing key file.
type KeyStore interface {
	// Load returns the installation key, generating and persisting a new
	// one when none exists yet. A key file that cannot be decoded is an
	// error ([ErrInvalidKey]); it is never repaired or replaced.
	Load() (Key, error)

	// Create generates and persists a new key. It fails with
	// [ErrKeyAlreadyExists] if a key file is already present.
	Create() (Key, error)

	// Path returns the location of the key file.
	Path() string
}

// HistoryCipher seals history entries for storage on untrusted media and
// opens them again.
type HistoryCipher interface {
	// Encrypt serializes h and seals it under key with a fresh random nonce.
	Encrypt(h models.History, key Key) (models.EncryptedHistory, error)

	// Decrypt authenticates and opens blob with key, then decodes the
	// plaintext. An authentication failure is [ErrDecryptionFailed]; a
	// plaintext that authenticates but does not decode returns the codec
	// error instead.
	Decrypt(blob models.EncryptedHistory, key Key) (models.History, error)
}
