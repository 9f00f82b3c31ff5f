package crypto

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-hist-keeper/internal/logger"
)

func newTestKeyStore(t *testing.T) (KeyStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "histkeeper", "key")
	return NewFileKeyStore(path, logger.Nop()), path
}

func TestFileKeyStore_LoadCreatesKey(t *testing.T) {
	store, path := newTestKeyStore(t)

	key, err := store.Load()
	require.NoError(t, err)
	assert.NotEqual(t, Key{}, key)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyFileMode), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := DecodeKey(string(data))
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestFileKeyStore_LoadIsStable(t *testing.T) {
	store, _ := newTestKeyStore(t)

	first, err := store.Load()
	require.NoError(t, err)
	second, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileKeyStore_LoadHistoricalFormats(t *testing.T) {
	for _, encoded := range []string{pinnedKeyRaw, pinnedKeyBlob, pinnedKeySequence + "\n"} {
		store, path := newTestKeyStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(encoded), 0o600))

		key, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, pinnedKey(t), key)
	}
}

func TestFileKeyStore_LoadInvalidKeyIsNotReplaced(t *testing.T) {
	store, path := newTestKeyStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err := store.Load()
	require.ErrorIs(t, err, ErrInvalidKey)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data))
}

func TestFileKeyStore_LoadReadError(t *testing.T) {
	store, path := newTestKeyStore(t)
	require.NoError(t, os.MkdirAll(path, 0o700))

	_, err := store.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidKey)
	assert.NotErrorIs(t, err, ErrKeyAlreadyExists)
}

func TestFileKeyStore_CreateTwice(t *testing.T) {
	store, path := newTestKeyStore(t)

	key, err := store.Create()
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = store.Create()
	require.ErrorIs(t, err, ErrKeyAlreadyExists)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, key, loaded)
}

func TestFileKeyStore_CreateAfterLoad(t *testing.T) {
	store, _ := newTestKeyStore(t)

	_, err := store.Load()
	require.NoError(t, err)

	_, err = store.Create()
	assert.ErrorIs(t, err, ErrKeyAlreadyExists)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestFileKeyStore_CreateRandomFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	store := &fileKeyStore{path: path, random: failingReader{}, logger: logger.Nop()}

	_, err := store.Create()
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no key file must be left behind")
}

func TestFileKeyStore_Path(t *testing.T) {
	store, path := newTestKeyStore(t)
	assert.Equal(t, path, store.Path())
}
