package store

import (
	"context"

	"github.com/MKhiriev/go-hist-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EncryptedHistoryRepository persists sealed history entries. It never sees
// plaintext: payloads are stored exactly as the cipher produced them.
type EncryptedHistoryRepository interface {
	// Save inserts records in one transaction. A record whose id is already
	// stored is skipped. It returns how many records were inserted.
	Save(ctx context.Context, records ...models.EncryptedRecord) (int64, error)
	// Get returns the record with the given id or ErrRecordNotFound.
	Get(ctx context.Context, id string) (models.EncryptedRecord, error)
	// List returns records matching filter ordered by creation time, then id.
	List(ctx context.Context, filter models.ListFilter) ([]models.EncryptedRecord, error)
	// Update replaces the payloads of stored records in one transaction,
	// keeping their creation time. Records whose id is not stored are
	// skipped. It returns how many records were updated.
	Update(ctx context.Context, records ...models.EncryptedRecord) (int64, error)
	// Delete removes records by id and returns how many existed.
	Delete(ctx context.Context, ids ...string) (int64, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}
