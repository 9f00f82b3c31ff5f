package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-hist-keeper/internal/codec"
	"github.com/MKhiriev/go-hist-keeper/internal/config"
	"github.com/MKhiriev/go-hist-keeper/internal/crypto"
	"github.com/MKhiriev/go-hist-keeper/internal/logger"
	"github.com/MKhiriev/go-hist-keeper/internal/service"
	"github.com/MKhiriev/go-hist-keeper/internal/store"
	"github.com/MKhiriev/go-hist-keeper/internal/validators"
	"github.com/MKhiriev/go-hist-keeper/models"
)

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.StructuredConfig{
		Crypto:  config.Crypto{KeyPath: filepath.Join(dir, "key")},
		Storage: config.Storage{DB: config.DB{DSN: filepath.Join(dir, "history.db")}},
		Log:     config.Log{Level: "info"},
		Workers: config.Workers{SealConcurrency: 2},
	}
}

func TestNewApp_SealAndOpen(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)

	_, err = os.Stat(cfg.Crypto.KeyPath)
	require.NoError(t, err, "first run creates the key")

	entry := models.NewHistory("git status", "/src", "session", "host:user", time.Unix(1685298940, 633872000).UTC())
	ids, inserted, err := a.History.Seal(ctx, entry)
	require.NoError(t, err)
	require.Equal(t, []string{entry.ID}, ids)
	require.Equal(t, int64(1), inserted)
	require.NoError(t, a.Close())

	// a second invocation reuses the key and the database
	a, err = NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	got, err := a.History.Open(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestNewApp_ForeignKeyCannotOpen(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	ids, _, err := a.History.Seal(ctx, models.History{Command: "ls"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	require.NoError(t, os.Remove(cfg.Crypto.KeyPath))

	a, err = NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.History.Open(ctx, ids[0])
	require.ErrorIs(t, err, crypto.ErrDecryptionFailed)
	assert.Equal(t, MsgKeyMismatch, UserMessage(err))
}

func TestNewApp_InvalidKeyFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Crypto.KeyPath, []byte("not a key"), 0o600))

	_, err := NewApp(context.Background(), cfg, logger.Nop())
	require.ErrorIs(t, err, crypto.ErrInvalidKey)

	data, err := os.ReadFile(cfg.Crypto.KeyPath)
	require.NoError(t, err)
	assert.Equal(t, "not a key", string(data))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"decryption failed", fmt.Errorf("open history a: %w", crypto.ErrDecryptionFailed), MsgKeyMismatch},
		{"invalid key", crypto.ErrInvalidKey, MsgInvalidKey},
		{"key exists", crypto.ErrKeyAlreadyExists, MsgKeyAlreadyExists},
		{"invalid config", config.ErrInvalidLogConfigs, MsgInvalidConfig},
		{"invalid input", ErrInvalidInput, MsgInvalidInput},
		{"rejected history", fmt.Errorf("entry 2: %w: %w", validators.ErrInvalidHistory, validators.ErrDuplicateID), MsgInvalidInput},
		{"newer format", codec.ErrUnsupportedFormatVersion, MsgNewerFormat},
		{"not found", store.ErrRecordNotFound, MsgNotFound},
		{"moved payload", fmt.Errorf("open history b: %w", service.ErrHistoryIDMismatch), MsgMalformedHistory},
		{"other", assert.AnError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestNewApp_SoftDeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := NewApp(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	kept := models.NewHistory("make", "/src", "session", "host:user", time.Unix(1, 0).UTC())
	gone := models.NewHistory("export TOKEN=secret", "/src", "session", "host:user", time.Unix(2, 0).UTC())
	_, _, err = a.History.Seal(ctx, kept, gone)
	require.NoError(t, err)

	var sealedPayload []byte
	require.NoError(t, a.db.QueryRowContext(ctx, "SELECT payload FROM history_blobs WHERE id = ?", gone.ID).Scan(&sealedPayload))

	deleted, err := a.History.Delete(ctx, gone.ID, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = a.History.Delete(ctx, gone.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted, "already deleted entries are left alone")

	got, err := a.History.Open(ctx, gone.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Command)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, gone.Timestamp, got.Timestamp)
	assert.Equal(t, gone.Cwd, got.Cwd)

	var resealedPayload []byte
	require.NoError(t, a.db.QueryRowContext(ctx, "SELECT payload FROM history_blobs WHERE id = ?", gone.ID).Scan(&resealedPayload))
	assert.NotEqual(t, sealedPayload, resealedPayload)

	live, err := a.History.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), live)

	all, err := a.History.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	purged, err := a.History.Purge(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	all, err = a.History.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), all)
}
