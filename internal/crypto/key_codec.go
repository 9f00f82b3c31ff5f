// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// keyFormat is one of the on-disk key encodings that ever shipped.
type keyFormat int

const (
	// keyFormatFixedArray is the bare 32 key bytes with no framing.
	keyFormatFixedArray keyFormat = iota + 1
	// keyFormatBlob is a msgpack bin holding the 32 key bytes.
	keyFormatBlob
	// keyFormatSequence is a msgpack array of 32 unsigned integers, one per
	// key byte. EncodeKey writes this format.
	keyFormatSequence
)

var errKeySize = errors.New("key is not the correct size")

// EncodeKey renders key as base64 (standard alphabet, padded) over a msgpack
// array of 32 unsigned integers. The output for a given key never changes.
func EncodeKey(key Key) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeArrayLen(KeySize); err != nil {
		return "", fmt.Errorf("encode key: %w", err)
	}
	for _, b := range key {
		if err := enc.EncodeUint(uint64(b)); err != nil {
			return "", fmt.Errorf("encode key: %w", err)
		}
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeKey accepts every key encoding that was ever written to disk:
//
//   - exactly 32 decoded bytes are the key itself;
//   - otherwise the first byte is a msgpack marker selecting either a bin of
//     32 bytes or an array of 32 integers in 0..255.
//
// The length check comes first. Trailing whitespace in s is ignored. Every
// failure wraps [ErrInvalidKey].
func DecodeKey(s string) (Key, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimRightFunc(s, unicode.IsSpace))
	if err != nil {
		return Key{}, fmt.Errorf("%w: base64: %w", ErrInvalidKey, err)
	}

	format, err := keyFormatOf(data)
	if err != nil {
		return Key{}, err
	}

	var key Key
	switch format {
	case keyFormatFixedArray:
		copy(key[:], data)
	case keyFormatBlob:
		key, err = decodeKeyBlob(data)
	case keyFormatSequence:
		key, err = decodeKeySequence(data)
	}
	if err != nil {
		return Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return key, nil
}

func keyFormatOf(data []byte) (keyFormat, error) {
	if len(data) == KeySize {
		return keyFormatFixedArray, nil
	}
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	switch c := data[0]; {
	case c == msgpcode.Bin8, c == msgpcode.Bin16, c == msgpcode.Bin32:
		return keyFormatBlob, nil
	case c >= msgpcode.FixedArrayLow && c <= msgpcode.FixedArrayHigh,
		c == msgpcode.Array16, c == msgpcode.Array32:
		return keyFormatSequence, nil
	default:
		return 0, fmt.Errorf("%w: unexpected marker 0x%02x", ErrInvalidKey, c)
	}
}

func decodeKeyBlob(data []byte) (Key, error) {
	src := bytes.NewReader(data)
	dec := msgpack.NewDecoder(src)

	n, err := dec.DecodeBytesLen()
	if err != nil {
		return Key{}, err
	}
	if n != KeySize {
		return Key{}, fmt.Errorf("%w: %d bytes", errKeySize, n)
	}

	var key Key
	if _, err = io.ReadFull(src, key[:]); err != nil {
		return Key{}, err
	}
	if src.Len() != 0 {
		return Key{}, fmt.Errorf("%d trailing bytes", src.Len())
	}
	return key, nil
}

func decodeKeySequence(data []byte) (Key, error) {
	src := bytes.NewReader(data)
	dec := msgpack.NewDecoder(src)

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return Key{}, err
	}
	if n != KeySize {
		return Key{}, fmt.Errorf("%w: %d elements", errKeySize, n)
	}

	var key Key
	for i := range key {
		b, err := decodeKeyByte(dec)
		if err != nil {
			return Key{}, fmt.Errorf("element %d: %w", i, err)
		}
		key[i] = b
	}
	if src.Len() != 0 {
		return Key{}, fmt.Errorf("%d trailing bytes", src.Len())
	}
	return key, nil
}

func decodeKeyByte(dec *msgpack.Decoder) (byte, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return 0, err
	}
	if !msgpcode.IsFixedNum(c) && (c < msgpcode.Uint8 || c > msgpcode.Int64) {
		return 0, fmt.Errorf("expected integer, got marker 0x%02x", c)
	}

	v, err := dec.DecodeInt64()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("value %d out of byte range", v)
	}
	return byte(v), nil
}
