// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-hist-keeper/internal/logger"
)

const (
	keyFileMode = 0o600
	keyDirMode  = 0o700
)

type fileKeyStore struct {
	path   string
	random io.Reader
	logger *logger.Logger
}

// NewFileKeyStore returns a KeyStore backed by the text file at path. The
// file holds the output of EncodeKey. Log entries mention the path only.
func NewFileKeyStore(path string, log *logger.Logger) KeyStore {
	return &fileKeyStore{
		path:   path,
		random: randReader,
		logger: log,
	}
}

func (s *fileKeyStore) Path() string {
	return s.path
}

// Load reads the key file, or creates it when it does not exist yet.
//
// Creation uses the same exclusive open as Create: if another process wins
// the race between the existence check and the write, Load reports
// ErrKeyAlreadyExists instead of replacing the other key.
func (s *fileKeyStore) Load() (Key, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		key, err := DecodeKey(string(data))
		if err != nil {
			s.logger.Err(err).Str("func", "fileKeyStore.Load").Str("path", s.path).Msg("key file is not a valid key")
			return Key{}, fmt.Errorf("decode key file %s: %w", s.path, err)
		}
		s.logger.Debug().Str("func", "fileKeyStore.Load").Str("path", s.path).Msg("key loaded")
		return key, nil
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info().Str("func", "fileKeyStore.Load").Str("path", s.path).Msg("no key file found, generating a new key")
		return s.Create()
	default:
		s.logger.Err(err).Str("func", "fileKeyStore.Load").Str("path", s.path).Msg("error reading key file")
		return Key{}, fmt.Errorf("read key file %s: %w", s.path, err)
	}
}

// Create generates a key and writes it to a file that must not exist yet.
func (s *fileKeyStore) Create() (Key, error) {
	key, err := generateKeyFrom(s.random)
	if err != nil {
		return Key{}, err
	}

	encoded, err := EncodeKey(key)
	if err != nil {
		return Key{}, err
	}

	if err = s.writeExclusive([]byte(encoded)); err != nil {
		return Key{}, err
	}

	s.logger.Info().Str("func", "fileKeyStore.Create").Str("path", s.path).Msg("new key written")
	return key, nil
}

func (s *fileKeyStore) writeExclusive(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), keyDirMode); err != nil {
		s.logger.Err(err).Str("func", "fileKeyStore.writeExclusive").Str("path", s.path).Msg("error creating key directory")
		return fmt.Errorf("create key directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, keyFileMode)
	if errors.Is(err, fs.ErrExist) {
		s.logger.Warn().Str("func", "fileKeyStore.writeExclusive").Str("path", s.path).Msg("refusing to overwrite existing key")
		return fmt.Errorf("%w: %s", ErrKeyAlreadyExists, s.path)
	}
	if err != nil {
		s.logger.Err(err).Str("func", "fileKeyStore.writeExclusive").Str("path", s.path).Msg("error creating key file")
		return fmt.Errorf("create key file: %w", err)
	}

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		// Drop the partial file so the next Load can start over.
		_ = os.Remove(s.path)
		return fmt.Errorf("write key file: %w", err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(s.path)
		return fmt.Errorf("sync key file: %w", err)
	}

	return f.Close()
}
