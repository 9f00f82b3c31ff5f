// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// KeySize is the length of the installation key in bytes.
const KeySize = 32

// Key is the symmetric key every history entry is sealed under.
type Key [KeySize]byte

// randReader is the entropy source for keys and nonces.
var randReader io.Reader = rand.Reader

// GenerateKey reads a fresh key from the system CSPRNG.
func GenerateKey() (Key, error) {
	return generateKeyFrom(randReader)
}

func generateKeyFrom(r io.Reader) (Key, error) {
	var key Key
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return Key{}, fmt.Errorf("read random key: %w", err)
	}
	return key, nil
}

// String hides the key material so a Key never ends up in logs by accident.
func (k Key) String() string {
	return "crypto.Key(redacted)"
}

// GoString implements fmt.GoStringer with the same redaction as String.
func (k Key) GoString() string {
	return k.String()
}
