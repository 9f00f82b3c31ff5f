// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package timefmt produces the canonical text form of history timestamps.
//
// A timestamp is always written in UTC as
//
//	YYYY-MM-DDThh:mm:ss[.fraction]Z
//
// where the fraction has 0, 3, 6 or 9 digits: the shortest of those that
// represents the nanosecond part exactly. The same instant therefore always
// produces the same text, and millisecond clocks do not pay for nine digits.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutSeconds = "2006-01-02T15:04:05Z"
	layoutMillis  = "2006-01-02T15:04:05.000Z"
	layoutMicros  = "2006-01-02T15:04:05.000000Z"
	layoutNanos   = "2006-01-02T15:04:05.000000000Z"
)

// Format returns the canonical text of t. Only years 0000-9999 fit the
// four-digit grammar; anything else yields [ErrInvalidTimestamp].
func Format(t time.Time) (string, error) {
	t = t.UTC()
	if year := t.Year(); year < 0 || year > 9999 {
		return "", fmt.Errorf("%w: year %d out of range", ErrInvalidTimestamp, year)
	}

	return t.Format(layoutFor(t.Nanosecond())), nil
}

// Parse reads a timestamp in the canonical grammar and returns it in UTC.
// The zone must be a literal Z and the fraction must follow a period; numeric
// offsets, even +00:00, are rejected.
func Parse(s string) (time.Time, error) {
	if !strings.HasSuffix(s, "Z") {
		return time.Time{}, fmt.Errorf("%w: %q does not end in Z", ErrInvalidTimestamp, s)
	}
	if strings.ContainsRune(s, ',') {
		return time.Time{}, fmt.Errorf("%w: %q uses a comma separator", ErrInvalidTimestamp, s)
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidTimestamp, s, err)
	}

	return t.UTC(), nil
}

func layoutFor(nanos int) string {
	switch {
	case nanos == 0:
		return layoutSeconds
	case nanos%1_000_000 == 0:
		return layoutMillis
	case nanos%1_000 == 0:
		return layoutMicros
	default:
		return layoutNanos
	}
}
