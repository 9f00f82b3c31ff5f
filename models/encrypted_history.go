// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EncryptedHistory is the storage and transport form of a [History] entry.
//
// Ciphertext carries the authenticated-encryption output (tag included) and
// Nonce the per-message value it was sealed with. Neither field is secret on
// its own; without the installation key the pair is indistinguishable from
// random bytes.
type EncryptedHistory struct {
	_msgpack struct{} `msgpack:",as_array"`

	Ciphertext []byte `json:"ciphertext" msgpack:"ciphertext"`
	Nonce      []byte `json:"nonce" msgpack:"nonce"`
}

// EncryptedRecord is an [EncryptedHistory] as persisted by the local store.
// Only the opaque history ID is kept in clear next to the blob.
type EncryptedRecord struct {
	ID        string
	Blob      EncryptedHistory
	CreatedAt time.Time
}

// ListFilter narrows a listing of stored records.
type ListFilter struct {
	// IDs restricts the result to the given identifiers when non-empty.
	IDs []string

	// Limit caps the number of returned records; zero means no limit.
	Limit uint64

	// HideDeleted drops entries marked as deleted before Limit is applied.
	// Only the history service honours it, since deleted_at is sealed.
	HideDeleted bool
}
