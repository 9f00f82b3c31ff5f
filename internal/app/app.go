// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-hist-keeper/internal/config"
	"github.com/MKhiriev/go-hist-keeper/internal/crypto"
	"github.com/MKhiriev/go-hist-keeper/internal/logger"
	"github.com/MKhiriev/go-hist-keeper/internal/service"
	"github.com/MKhiriev/go-hist-keeper/internal/store"
)

// App holds the long-lived components of one histkeeper invocation.
type App struct {
	Keys    crypto.KeyStore
	History service.HistoryService

	db     *store.DB
	logger *logger.Logger
}

// NewKeyStore returns the key store configured by cfg.
func NewKeyStore(cfg *config.StructuredConfig, log *logger.Logger) crypto.KeyStore {
	return crypto.NewFileKeyStore(cfg.Crypto.KeyPath, log)
}

// NewApp opens and migrates the database, loads (or creates) the key and
// builds the history service. Close must be called when done.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "app.NewApp").Msg("error migrating database")
		return nil, errors.Join(fmt.Errorf("migrate history database: %w", err), db.Close())
	}

	keys := NewKeyStore(cfg, log)
	history, err := service.NewHistoryService(
		keys,
		crypto.NewHistoryCipher(),
		store.NewEncryptedHistoryRepository(db, log),
		cfg.Workers,
		log,
	)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &App{
		Keys:    keys,
		History: history,
		db:      db,
		logger:  log,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	if err := a.db.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Close").Msg("error closing database")
		return fmt.Errorf("close history database: %w", err)
	}
	return nil
}
