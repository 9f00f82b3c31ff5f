// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-hist-keeper/internal/codec"
	"github.com/MKhiriev/go-hist-keeper/internal/logger"
	"github.com/MKhiriev/go-hist-keeper/models"
)

type encryptedHistoryRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewEncryptedHistoryRepository returns the SQLite-backed repository.
func NewEncryptedHistoryRepository(db *DB, logger *logger.Logger) EncryptedHistoryRepository {
	return &encryptedHistoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *encryptedHistoryRepository) Save(ctx context.Context, records ...models.EncryptedRecord) (int64, error) {
	log := logger.FromContextOr(ctx, r.logger)

	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "encryptedHistoryRepository.Save").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var inserted int64
	for _, record := range records {
		payload, err := codec.MarshalEncrypted(record.Blob)
		if err != nil {
			return 0, fmt.Errorf("failed to encode payload (id=%s): %w", record.ID, err)
		}

		query, args, err := buildInsertHistoryQuery(record.ID, payload, record.CreatedAt.UnixNano())
		if err != nil {
			return 0, err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "encryptedHistoryRepository.Save").
				Str("id", record.ID).
				Msg("failed to insert history record")
			return 0, fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, record.ID, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, record.ID, err)
		}
		if affected == 0 {
			log.Debug().
				Str("func", "encryptedHistoryRepository.Save").
				Str("id", record.ID).
				Msg("history record already stored, skipped")
		}
		inserted += affected
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "encryptedHistoryRepository.Save").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Str("func", "encryptedHistoryRepository.Save").
		Int("count", len(records)).
		Int64("inserted", inserted).
		Msg("history records saved")
	return inserted, nil
}

func (r *encryptedHistoryRepository) Get(ctx context.Context, id string) (models.EncryptedRecord, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildSelectHistoryByIDQuery(id)
	if err != nil {
		return models.EncryptedRecord{}, err
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EncryptedRecord{}, fmt.Errorf("%w (id=%s)", ErrRecordNotFound, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "encryptedHistoryRepository.Get").
			Str("id", id).
			Msg("failed to get history record")
		return models.EncryptedRecord{}, err
	}

	return record, nil
}

func (r *encryptedHistoryRepository) List(ctx context.Context, filter models.ListFilter) ([]models.EncryptedRecord, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildSelectHistoryQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "encryptedHistoryRepository.List").Msg("failed to query history records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.EncryptedRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Err(err).Str("func", "encryptedHistoryRepository.List").Msg("failed to scan history record")
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "encryptedHistoryRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return records, nil
}

func (r *encryptedHistoryRepository) Update(ctx context.Context, records ...models.EncryptedRecord) (int64, error) {
	log := logger.FromContextOr(ctx, r.logger)

	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "encryptedHistoryRepository.Update").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var updated int64
	for _, record := range records {
		payload, err := codec.MarshalEncrypted(record.Blob)
		if err != nil {
			return 0, fmt.Errorf("failed to encode payload (id=%s): %w", record.ID, err)
		}

		query, args, err := buildUpdateHistoryPayloadQuery(record.ID, payload)
		if err != nil {
			return 0, err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "encryptedHistoryRepository.Update").
				Str("id", record.ID).
				Msg("failed to update history record")
			return 0, fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, record.ID, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, record.ID, err)
		}
		updated += affected
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "encryptedHistoryRepository.Update").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

func (r *encryptedHistoryRepository) Delete(ctx context.Context, ids ...string) (int64, error) {
	log := logger.FromContextOr(ctx, r.logger)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := buildDeleteHistoryQuery(ids)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "encryptedHistoryRepository.Delete").
			Int("count", len(ids)).
			Msg("failed to delete history records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return deleted, nil
}

func (r *encryptedHistoryRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := buildCountHistoryQuery()
	if err != nil {
		return 0, err
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContextOr(ctx, r.logger).Err(err).Str("func", "encryptedHistoryRepository.Count").Msg("failed to count history records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row in historyColumns order. sql.ErrNoRows is
// returned unwrapped.
func scanRecord(row rowScanner) (models.EncryptedRecord, error) {
	var (
		record    models.EncryptedRecord
		payload   []byte
		createdAt int64
	)

	if err := row.Scan(&record.ID, &payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedRecord{}, err
		}
		return models.EncryptedRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	blob, err := codec.UnmarshalEncrypted(payload)
	if err != nil {
		return models.EncryptedRecord{}, fmt.Errorf("%w (id=%s): %w", ErrScanningRow, record.ID, err)
	}

	record.Blob = blob
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	return record, nil
}
