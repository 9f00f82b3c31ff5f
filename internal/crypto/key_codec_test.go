package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pinnedKeyHex = "94b3edbf26658e6b882568a9949f7ecb6cfc1fd93546e9fce44dccb0dd7a66d2"

// Every encoding below was written to disk by some release and must keep
// decoding to pinnedKey.
const (
	pinnedKeyRaw      = "lLPtvyZljmuIJWiplJ9+y2z8H9k1Run85E3MsN16ZtI="
	pinnedKeyBlob     = "xCCUs+2/JmWOa4glaKmUn37LbPwf2TVG6fzkTcyw3Xpm0g=="
	pinnedKeySequence = "3AAgzJTMs8ztzL8mZcyOa8yIJWjMqcyUzJ9+zMtszPwfzNk1RszpzPzM5E3MzMywzN16ZszS"
)

func pinnedKey(t *testing.T) Key {
	t.Helper()
	b, err := hex.DecodeString(pinnedKeyHex)
	require.NoError(t, err)
	return Key(b)
}

func TestEncodeKey_Pinned(t *testing.T) {
	got, err := EncodeKey(pinnedKey(t))
	require.NoError(t, err)
	assert.Equal(t, pinnedKeySequence, got)
}

func TestDecodeKey_HistoricalFormats(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"fixed array", pinnedKeyRaw},
		{"bin blob", pinnedKeyBlob},
		{"integer sequence", pinnedKeySequence},
		{"trailing newline", pinnedKeySequence + "\n"},
		{"trailing spaces and CRLF", pinnedKeyBlob + "  \r\n"},
	}

	want := pinnedKey(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeKey(tt.encoded)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

// A 32-byte payload is the raw key even when its first byte looks like a
// blob or array marker.
func TestDecodeKey_RawTakesPrecedence(t *testing.T) {
	for _, marker := range []byte{0xc4, 0xdc, 0x9f} {
		var raw Key
		raw[0] = marker
		raw[1] = 0x20
		raw[31] = 0x01

		got, err := DecodeKey(base64.StdEncoding.EncodeToString(raw[:]))
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}

func TestDecodeKey_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		encoded   string
		wantSize  bool
	}{
		{"not base64", "not a key!", false},
		{"empty", "", false},
		{"blob of 31 bytes", "xB+Us+2/JmWOa4glaKmUn37LbPwf2TVG6fzkTcyw3Xpm", true},
		{"sequence of 31 elements", "3AAfzJTMs8ztzL8mZcyOa8yIJWjMqcyUzJ9+zMtszPwfzNk1RszpzPzM5E3MzMywzN16Zg==", true},
		{"map marker", "gAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", false},
		{"31 raw bytes", base64.StdEncoding.EncodeToString(make([]byte, 31)), false},
		{"leading whitespace", " " + pinnedKeyRaw, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeKey(tt.encoded)
			require.ErrorIs(t, err, ErrInvalidKey)
			if tt.wantSize {
				assert.ErrorIs(t, err, errKeySize)
				assert.Contains(t, err.Error(), "key is not the correct size")
			}
		})
	}
}

func TestDecodeKey_SequenceElements(t *testing.T) {
	sequence := func(elems ...byte) string {
		data := []byte{0xdc, 0x00, 0x20}
		data = append(data, elems...)
		return base64.StdEncoding.EncodeToString(data)
	}
	ones := func(n int) []byte {
		out := make([]byte, n)
		for i := range out {
			out[i] = 0x01
		}
		return out
	}

	t.Run("non-minimal uint16 element", func(t *testing.T) {
		elems := append([]byte{0xcd, 0x00, 0x07}, ones(31)...)
		key, err := DecodeKey(sequence(elems...))
		require.NoError(t, err)
		assert.Equal(t, byte(7), key[0])
		assert.Equal(t, byte(1), key[31])
	})

	t.Run("element above 255", func(t *testing.T) {
		elems := append([]byte{0xcd, 0x01, 0x00}, ones(31)...)
		_, err := DecodeKey(sequence(elems...))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("negative element", func(t *testing.T) {
		elems := append([]byte{0xff}, ones(31)...)
		_, err := DecodeKey(sequence(elems...))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("string element", func(t *testing.T) {
		elems := append([]byte{0xa1, 'a'}, ones(31)...)
		_, err := DecodeKey(sequence(elems...))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := DecodeKey(sequence(ones(20)...))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		elems := append(ones(32), 0x00)
		_, err := DecodeKey(sequence(elems...))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestKeyCodec_RoundTrip(t *testing.T) {
	for range 16 {
		key, err := GenerateKey()
		require.NoError(t, err)

		encoded, err := EncodeKey(key)
		require.NoError(t, err)

		decoded, err := DecodeKey(encoded)
		require.NoError(t, err)
		assert.Equal(t, key, decoded)
	}
}

func TestKey_StringIsRedacted(t *testing.T) {
	key := pinnedKey(t)
	assert.NotContains(t, key.String(), "94b3")
	assert.Equal(t, key.String(), key.GoString())
}
