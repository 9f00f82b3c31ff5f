// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-hist-keeper/internal/config"
	"github.com/MKhiriev/go-hist-keeper/internal/crypto"
	"github.com/MKhiriev/go-hist-keeper/internal/logger"
	"github.com/MKhiriev/go-hist-keeper/internal/store"
	"github.com/MKhiriev/go-hist-keeper/internal/validators"
	"github.com/MKhiriev/go-hist-keeper/internal/workers"
	"github.com/MKhiriev/go-hist-keeper/models"
)

type historyService struct {
	key       crypto.Key
	cipher    crypto.HistoryCipher
	repo      store.EncryptedHistoryRepository
	validator validators.Validator
	pool      *workers.Pool
	logger    *logger.Logger

	now func() time.Time
}

// NewHistoryService loads the installation key from keys once and returns a
// service sealing with cipher into repo. Batches are processed with
// cfg.SealConcurrency parallel tasks.
func NewHistoryService(
	keys crypto.KeyStore,
	cipher crypto.HistoryCipher,
	repo store.EncryptedHistoryRepository,
	cfg config.Workers,
	log *logger.Logger,
) (HistoryService, error) {
	key, err := keys.Load()
	if err != nil {
		log.Err(err).Str("func", "NewHistoryService").Str("key_path", keys.Path()).Msg("failed to load encryption key")
		return nil, fmt.Errorf("load encryption key: %w", err)
	}

	return &historyService{
		key:       key,
		cipher:    cipher,
		repo:      repo,
		validator: validators.NewHistoryValidator(),
		pool:      workers.NewPool(cfg.SealConcurrency),
		logger:    log,
		now:       time.Now,
	}, nil
}

func (s *historyService) Seal(ctx context.Context, entries ...models.History) ([]string, int64, error) {
	log := logger.FromContextOr(ctx, s.logger)

	if len(entries) == 0 {
		return nil, 0, nil
	}
	if err := s.validator.Validate(ctx, entries); err != nil {
		log.Err(err).Str("func", "historyService.Seal").Int("count", len(entries)).Msg("history rejected")
		return nil, 0, err
	}

	sealedAt := s.now().UTC()
	prepared := make([]models.History, len(entries))
	for i, h := range entries {
		if h.ID == "" {
			h.ID = models.NewHistoryID()
		}
		if h.Timestamp.IsZero() {
			h.Timestamp = sealedAt
		}
		prepared[i] = h
	}

	records, err := s.seal(ctx, prepared, sealedAt)
	if err != nil {
		log.Err(err).Str("func", "historyService.Seal").Int("count", len(entries)).Msg("failed to seal history")
		return nil, 0, err
	}

	inserted, err := s.repo.Save(ctx, records...)
	if err != nil {
		log.Err(err).Str("func", "historyService.Seal").Int("count", len(records)).Msg("failed to store sealed history")
		return nil, 0, fmt.Errorf("store sealed history: %w", err)
	}

	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}

	log.Info().
		Str("func", "historyService.Seal").
		Int("count", len(records)).
		Int64("inserted", inserted).
		Msg("history sealed")
	return ids, inserted, nil
}

// seal encrypts entries in parallel with a fresh nonce each, keeping input
// order.
func (s *historyService) seal(ctx context.Context, entries []models.History, createdAt time.Time) ([]models.EncryptedRecord, error) {
	records := make([]models.EncryptedRecord, len(entries))

	err := s.pool.Run(ctx, len(entries), func(_ context.Context, i int) error {
		blob, err := s.cipher.Encrypt(entries[i], s.key)
		if err != nil {
			return fmt.Errorf("seal history %s: %w", entries[i].ID, err)
		}

		records[i] = models.EncryptedRecord{
			ID:        entries[i].ID,
			Blob:      blob,
			CreatedAt: createdAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *historyService) Open(ctx context.Context, id string) (models.History, error) {
	log := logger.FromContextOr(ctx, s.logger)

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.History{}, fmt.Errorf("load history %s: %w", id, err)
	}

	h, err := s.open(record)
	if err != nil {
		log.Err(err).Str("func", "historyService.Open").Str("id", id).Msg("failed to open history")
		return models.History{}, err
	}
	return h, nil
}

func (s *historyService) OpenAll(ctx context.Context, filter models.ListFilter) ([]models.History, error) {
	log := logger.FromContextOr(ctx, s.logger)

	// deleted_at is sealed, so the limit can only apply after decryption
	query := filter
	if filter.HideDeleted {
		query.Limit = 0
	}

	records, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]models.History, len(records))
	err = s.pool.Run(ctx, len(records), func(_ context.Context, i int) error {
		h, err := s.open(records[i])
		if err != nil {
			return err
		}
		entries[i] = h
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "historyService.OpenAll").Int("count", len(records)).Msg("failed to open history")
		return nil, err
	}

	if filter.HideDeleted {
		entries = liveOnly(entries, filter.Limit)
	}

	log.Debug().Str("func", "historyService.OpenAll").Int("count", len(entries)).Msg("history opened")
	return entries, nil
}

// liveOnly drops deleted entries and keeps at most limit of the rest. A zero
// limit keeps all.
func liveOnly(entries []models.History, limit uint64) []models.History {
	live := entries[:0]
	for _, h := range entries {
		if h.IsDeleted() {
			continue
		}
		if limit > 0 && uint64(len(live)) == limit {
			break
		}
		live = append(live, h)
	}
	return live
}

// open decrypts one record and checks it holds the entry it is stored
// under.
func (s *historyService) open(record models.EncryptedRecord) (models.History, error) {
	h, err := s.cipher.Decrypt(record.Blob, s.key)
	if err != nil {
		return models.History{}, fmt.Errorf("open history %s: %w", record.ID, err)
	}
	if h.ID != record.ID {
		return models.History{}, fmt.Errorf("open history %s: %w: sealed entry has id %s", record.ID, ErrHistoryIDMismatch, h.ID)
	}
	return h, nil
}

func (s *historyService) Delete(ctx context.Context, ids ...string) (int64, error) {
	log := logger.FromContextOr(ctx, s.logger)

	if len(ids) == 0 {
		return 0, nil
	}

	entries, err := s.OpenAll(ctx, models.ListFilter{IDs: ids, HideDeleted: true})
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	deletedAt := s.now().UTC()
	for i := range entries {
		entries[i].Command = ""
		entries[i].DeletedAt = &deletedAt
	}

	records, err := s.seal(ctx, entries, deletedAt)
	if err != nil {
		log.Err(err).Str("func", "historyService.Delete").Int("count", len(entries)).Msg("failed to reseal deleted history")
		return 0, fmt.Errorf("delete history: %w", err)
	}

	deleted, err := s.repo.Update(ctx, records...)
	if err != nil {
		log.Err(err).Str("func", "historyService.Delete").Int("count", len(records)).Msg("failed to store deleted history")
		return 0, fmt.Errorf("delete history: %w", err)
	}

	log.Info().
		Str("func", "historyService.Delete").
		Int("count", len(ids)).
		Int64("deleted", deleted).
		Msg("history marked deleted")
	return deleted, nil
}

func (s *historyService) Purge(ctx context.Context, ids ...string) (int64, error) {
	purged, err := s.repo.Delete(ctx, ids...)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}

	logger.FromContextOr(ctx, s.logger).Info().
		Str("func", "historyService.Purge").
		Int("count", len(ids)).
		Int64("purged", purged).
		Msg("history purged")
	return purged, nil
}

func (s *historyService) Count(ctx context.Context, includeDeleted bool) (int64, error) {
	if includeDeleted {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("count history: %w", err)
		}
		return count, nil
	}

	entries, err := s.OpenAll(ctx, models.ListFilter{HideDeleted: true})
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return int64(len(entries)), nil
}
