// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-hist-keeper/internal/timefmt"
	"github.com/MKhiriev/go-hist-keeper/models"
)

// Field counts double as the format version: every layout change appended
// fields, so the msgpack array length identifies the layout.
const (
	fieldCountLegacy  = 8 // no deleted_at field at all
	fieldCountCurrent = 9 // deleted_at present, nil or timestamp text
)

// recordFormat is a history layout known to the decoder.
type recordFormat int

const (
	formatEightField recordFormat = iota + 1
	formatNineField
)

// formatFor maps a decoded field count to its layout.
func formatFor(fields int) (recordFormat, error) {
	switch {
	case fields < fieldCountLegacy:
		return 0, fmt.Errorf("%w: %d fields", ErrMalformedRecord, fields)
	case fields == fieldCountLegacy:
		return formatEightField, nil
	case fields == fieldCountCurrent:
		return formatNineField, nil
	default:
		return 0, fmt.Errorf("%w: %d fields", ErrUnsupportedFormatVersion, fields)
	}
}

// EncodeHistory serializes h into the current nine-field layout:
//
//	[id, timestamp, duration, exit, command, cwd, session, hostname, deleted_at]
//
// as a msgpack array. Strings use the shortest str marker, integers the
// shortest int marker, timestamps their canonical text and a missing
// deleted_at an explicit nil. The result is the unit of encryption and has no
// outer length prefix.
func EncodeHistory(h models.History) ([]byte, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"id", h.ID},
		{"command", h.Command},
		{"cwd", h.Cwd},
		{"session", h.Session},
		{"hostname", h.Hostname},
	} {
		if !utf8.ValidString(f.value) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidUTF8, f.name)
		}
	}

	timestamp, err := timefmt.Format(h.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("format timestamp: %w", err)
	}

	var deletedAt string
	if h.DeletedAt != nil {
		if deletedAt, err = timefmt.Format(*h.DeletedAt); err != nil {
			return nil, fmt.Errorf("format deleted_at: %w", err)
		}
	}

	var buf bytes.Buffer
	w := newFieldWriter(&buf)

	w.header(fieldCountCurrent)
	w.str(h.ID)
	w.str(timestamp)
	w.int(h.Duration)
	w.int(h.Exit)
	w.str(h.Command)
	w.str(h.Cwd)
	w.str(h.Session)
	w.str(h.Hostname)
	if h.DeletedAt != nil {
		w.str(deletedAt)
	} else {
		w.null()
	}

	if w.err != nil {
		return nil, fmt.Errorf("encode history: %w", w.err)
	}
	if w.fields != fieldCountCurrent {
		panic(fmt.Sprintf("codec: wrote %d history fields, header says %d", w.fields, fieldCountCurrent))
	}

	return buf.Bytes(), nil
}

// DecodeHistory parses a buffer produced by [EncodeHistory] or by any earlier
// release. Eight-field buffers predate soft deletion and decode with a nil
// DeletedAt. Buffers declaring more than nine fields come from newer software
// and fail with [ErrUnsupportedFormatVersion]; everything else that does not
// fit exactly, trailing bytes included, fails with [ErrMalformedRecord].
func DecodeHistory(data []byte) (models.History, error) {
	r := newFieldReader(data)

	n, err := r.arrayLen()
	if err != nil {
		return models.History{}, err
	}

	format, err := formatFor(n)
	if err != nil {
		return models.History{}, err
	}

	var raw rawHistory
	switch format {
	case formatEightField:
		err = raw.readEightFields(r)
	case formatNineField:
		err = raw.readNineFields(r)
	}
	if err != nil {
		return models.History{}, err
	}

	if rest := r.remaining(); rest != 0 {
		return models.History{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedRecord, rest)
	}

	return raw.toHistory()
}

// rawHistory holds decoded fields before the timestamp texts are parsed.
type rawHistory struct {
	history   models.History
	timestamp string
	deletedAt *string
}

func (raw *rawHistory) readEightFields(r *fieldReader) error {
	h := &raw.history
	var err error

	if h.ID, err = r.str("id"); err != nil {
		return err
	}
	if raw.timestamp, err = r.str("timestamp"); err != nil {
		return err
	}
	if h.Duration, err = r.int("duration"); err != nil {
		return err
	}
	if h.Exit, err = r.int("exit"); err != nil {
		return err
	}
	if h.Command, err = r.str("command"); err != nil {
		return err
	}
	if h.Cwd, err = r.str("cwd"); err != nil {
		return err
	}
	if h.Session, err = r.str("session"); err != nil {
		return err
	}
	if h.Hostname, err = r.str("hostname"); err != nil {
		return err
	}

	return nil
}

func (raw *rawHistory) readNineFields(r *fieldReader) error {
	if err := raw.readEightFields(r); err != nil {
		return err
	}

	var err error
	raw.deletedAt, err = r.optionalStr("deleted_at")
	return err
}

func (raw *rawHistory) toHistory() (models.History, error) {
	h := raw.history

	ts, err := timefmt.Parse(raw.timestamp)
	if err != nil {
		return models.History{}, malformed("timestamp", err)
	}
	h.Timestamp = ts

	if raw.deletedAt != nil {
		deletedAt, err := timefmt.Parse(*raw.deletedAt)
		if err != nil {
			return models.History{}, malformed("deleted_at", err)
		}
		h.DeletedAt = &deletedAt
	}

	return h, nil
}
