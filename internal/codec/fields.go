package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// fieldWriter writes history fields with the smallest msgpack encoding for
// each value and remembers the first error, so the encode path reads as a
// flat list of fields.
type fieldWriter struct {
	enc    *msgpack.Encoder
	fields int
	err    error
}

func newFieldWriter(w io.Writer) *fieldWriter {
	return &fieldWriter{enc: msgpack.NewEncoder(w)}
}

func (w *fieldWriter) header(fields int) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeArrayLen(fields)
}

func (w *fieldWriter) str(s string) {
	if w.err != nil {
		return
	}
	w.fields++
	w.err = w.enc.EncodeString(s)
}

func (w *fieldWriter) int(n int64) {
	if w.err != nil {
		return
	}
	w.fields++
	w.err = w.enc.EncodeInt(n)
}

func (w *fieldWriter) null() {
	if w.err != nil {
		return
	}
	w.fields++
	w.err = w.enc.EncodeNil()
}

// fieldReader reads history fields back. Every read checks the marker byte
// before decoding so a value of the wrong type is reported instead of being
// coerced (msgpack decoders happily turn nil into "" or 0).
type fieldReader struct {
	src *bytes.Reader
	dec *msgpack.Decoder
}

func newFieldReader(data []byte) *fieldReader {
	src := bytes.NewReader(data)
	return &fieldReader{src: src, dec: msgpack.NewDecoder(src)}
}

func (r *fieldReader) peek(field string) (byte, error) {
	c, err := r.dec.PeekCode()
	if err != nil {
		return 0, malformed(field, fmt.Errorf("read marker: %w", err))
	}
	return c, nil
}

func (r *fieldReader) arrayLen() (int, error) {
	c, err := r.peek("field count")
	if err != nil {
		return 0, err
	}
	if !isArray(c) {
		return 0, malformed("field count", fmt.Errorf("unexpected marker 0x%02x", c))
	}

	n, err := r.dec.DecodeArrayLen()
	if err != nil {
		return 0, malformed("field count", err)
	}
	return n, nil
}

func (r *fieldReader) str(field string) (string, error) {
	c, err := r.peek(field)
	if err != nil {
		return "", err
	}
	if !isString(c) {
		return "", malformed(field, fmt.Errorf("expected string, got marker 0x%02x", c))
	}

	s, err := r.dec.DecodeString()
	if err != nil {
		return "", malformed(field, err)
	}
	if !utf8.ValidString(s) {
		return "", malformed(field, ErrInvalidUTF8)
	}
	return s, nil
}

// optionalStr reads either a string or an explicit nil marker.
func (r *fieldReader) optionalStr(field string) (*string, error) {
	c, err := r.peek(field)
	if err != nil {
		return nil, err
	}

	if c == msgpcode.Nil {
		if err = r.dec.DecodeNil(); err != nil {
			return nil, malformed(field, err)
		}
		return nil, nil
	}

	s, err := r.str(field)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *fieldReader) int(field string) (int64, error) {
	c, err := r.peek(field)
	if err != nil {
		return 0, err
	}

	switch {
	case msgpcode.IsFixedNum(c),
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64,
		c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32:
		n, err := r.dec.DecodeInt64()
		if err != nil {
			return 0, malformed(field, err)
		}
		return n, nil
	case c == msgpcode.Uint64:
		u, err := r.dec.DecodeUint64()
		if err != nil {
			return 0, malformed(field, err)
		}
		if u > math.MaxInt64 {
			return 0, malformed(field, fmt.Errorf("value %d overflows int64", u))
		}
		return int64(u), nil
	default:
		return 0, malformed(field, fmt.Errorf("expected integer, got marker 0x%02x", c))
	}
}

func (r *fieldReader) remaining() int {
	return r.src.Len()
}

func malformed(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedRecord, field, err)
}

func isString(c byte) bool {
	return (c >= msgpcode.FixedStrLow && c <= msgpcode.FixedStrHigh) ||
		c == msgpcode.Str8 || c == msgpcode.Str16 || c == msgpcode.Str32
}

func isArray(c byte) bool {
	return (c >= msgpcode.FixedArrayLow && c <= msgpcode.FixedArrayHigh) ||
		c == msgpcode.Array16 || c == msgpcode.Array32
}
