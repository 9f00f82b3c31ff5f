// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// History is a single shell history entry, the plaintext unit protected by
// the encryption layer. It never leaves the local machine unencrypted.
type History struct {
	// ID is an opaque identifier, unique per entry and immutable once set.
	ID string `json:"id"`

	// Timestamp is the moment the command was started. It is normalized to
	// UTC when encoded.
	Timestamp time.Time `json:"timestamp"`

	// Duration is the run time in nanoseconds. Upstream clock anomalies can
	// make it negative; it is kept as-is.
	Duration int64 `json:"duration"`

	// Exit is the exit code of the command.
	Exit int64 `json:"exit"`

	Command  string `json:"command"`
	Cwd      string `json:"cwd"`
	Session  string `json:"session"`
	Hostname string `json:"hostname"`

	// DeletedAt is set when the entry was soft-deleted; nil means live.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewHistory builds a live History entry with a freshly generated ID.
//
// IDs are time-ordered UUIDv7 values written without dashes (32 lowercase
// hex characters). If the v7 generator fails a random v4 value is used.
func NewHistory(command, cwd, session, hostname string, timestamp time.Time) History {
	return History{
		ID:        NewHistoryID(),
		Timestamp: timestamp,
		Command:   command,
		Cwd:       cwd,
		Session:   session,
		Hostname:  hostname,
	}
}

// NewHistoryID returns a new history identifier in simple (dash-less) form.
func NewHistoryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

// IsDeleted reports whether the entry carries a deletion timestamp.
func (h History) IsDeleted() bool {
	return h.DeletedAt != nil
}
