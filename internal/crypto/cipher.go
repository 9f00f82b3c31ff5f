// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/MKhiriev/go-hist-keeper/internal/codec"
	"github.com/MKhiriev/go-hist-keeper/models"
)

// NonceSize is the XSalsa20 nonce length.
const NonceSize = 24

type historyCipher struct {
	random io.Reader
}

// NewHistoryCipher returns a HistoryCipher using XSalsa20-Poly1305
// (NaCl secretbox) with a random nonce per entry. The ciphertext carries the
// 16-byte Poly1305 tag in front of the encrypted record, as secretbox does.
func NewHistoryCipher() HistoryCipher {
	return &historyCipher{random: randReader}
}

func (c *historyCipher) Encrypt(h models.History, key Key) (models.EncryptedHistory, error) {
	plaintext, err := codec.EncodeHistory(h)
	if err != nil {
		return models.EncryptedHistory{}, fmt.Errorf("encode history %s: %w", h.ID, err)
	}

	var nonce [NonceSize]byte
	if _, err = io.ReadFull(c.random, nonce[:]); err != nil {
		return models.EncryptedHistory{}, fmt.Errorf("generate nonce: %w", err)
	}

	k := [KeySize]byte(key)
	ciphertext := secretbox.Seal(nil, plaintext, &nonce, &k)

	return models.EncryptedHistory{
		Ciphertext: ciphertext,
		Nonce:      nonce[:],
	}, nil
}

func (c *historyCipher) Decrypt(blob models.EncryptedHistory, key Key) (models.History, error) {
	if len(blob.Nonce) != NonceSize {
		return models.History{}, fmt.Errorf("%w: nonce is %d bytes, want %d", ErrDecryptionFailed, len(blob.Nonce), NonceSize)
	}
	if len(blob.Ciphertext) < secretbox.Overhead {
		return models.History{}, fmt.Errorf("%w: ciphertext shorter than tag", ErrDecryptionFailed)
	}

	nonce := [NonceSize]byte(blob.Nonce)
	k := [KeySize]byte(key)

	plaintext, ok := secretbox.Open(nil, blob.Ciphertext, &nonce, &k)
	if !ok {
		return models.History{}, ErrDecryptionFailed
	}

	h, err := codec.DecodeHistory(plaintext)
	if err != nil {
		return models.History{}, fmt.Errorf("decode decrypted history: %w", err)
	}
	return h, nil
}
