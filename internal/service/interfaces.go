package service

import (
	"context"

	"github.com/MKhiriev/go-hist-keeper/models"
)

// HistoryService seals shell history for storage and opens it again. Only
// ciphertext crosses the storage boundary; the key stays inside the service.
type HistoryService interface {
	// Seal encrypts entries and stores them. Entries without an id get a
	// fresh one and entries without a timestamp get the current time. It
	// returns the ids in input order and how many entries were newly stored.
	// An entry whose id is already stored keeps its existing ciphertext.
	Seal(ctx context.Context, entries ...models.History) ([]string, int64, error)

	// Open loads and decrypts one entry. A stored entry that does not
	// authenticate under the installation key fails with
	// crypto.ErrDecryptionFailed.
	Open(ctx context.Context, id string) (models.History, error)

	// OpenAll loads and decrypts every entry matching filter, in storage
	// order. Unknown ids in filter are skipped. The first entry that cannot
	// be opened fails the whole call.
	OpenAll(ctx context.Context, filter models.ListFilter) ([]models.History, error)

	// Delete marks entries as deleted: the command is cleared, deleted_at is
	// set and the entry is sealed again under a fresh nonce. Unknown and
	// already deleted ids are skipped. It returns how many entries were
	// marked.
	Delete(ctx context.Context, ids ...string) (int64, error)

	// Purge removes entries by id and returns how many existed.
	Purge(ctx context.Context, ids ...string) (int64, error)

	// Count returns the number of stored entries, leaving out deleted ones
	// unless includeDeleted is set.
	Count(ctx context.Context, includeDeleted bool) (int64, error)
}
