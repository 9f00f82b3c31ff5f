package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/MKhiriev/go-hist-keeper/models"
)

// MarshalEncrypted encodes an encrypted history as the msgpack array
// [ciphertext, nonce] with both values as bin.
func MarshalEncrypted(blob models.EncryptedHistory) ([]byte, error) {
	data, err := msgpack.Marshal(&blob)
	if err != nil {
		return nil, fmt.Errorf("marshal encrypted history: %w", err)
	}
	return data, nil
}

// UnmarshalEncrypted is the inverse of [MarshalEncrypted]. Trailing bytes are
// an error.
func UnmarshalEncrypted(data []byte) (models.EncryptedHistory, error) {
	src := bytes.NewReader(data)

	var blob models.EncryptedHistory
	if err := msgpack.NewDecoder(src).Decode(&blob); err != nil {
		return models.EncryptedHistory{}, fmt.Errorf("%w: %w", ErrMalformedBlob, err)
	}
	if src.Len() != 0 {
		return models.EncryptedHistory{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedBlob, src.Len())
	}

	return blob, nil
}
