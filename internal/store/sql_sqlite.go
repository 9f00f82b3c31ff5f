// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-hist-keeper/internal/config"
	"github.com/MKhiriev/go-hist-keeper/internal/logger"
)

const (
	dbDirMode  = 0o700
	dbFileMode = 0o600
)

// NewConnectSQLite opens the SQLite database named by cfg.DSN, creating the
// file and its directory when needed, and checks the connection.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory:
	// databases alive across calls.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error pinging DB: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

func createLocalDBFileIfNotExists(dsn string) error {
	dbFile, ok := dbFilePath(dsn)
	if !ok {
		return nil
	}

	if _, err := os.Stat(dbFile); !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbFile), dbDirMode); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}

	f, err := os.OpenFile(dbFile, os.O_WRONLY|os.O_CREATE, dbFileMode)
	if err != nil {
		return fmt.Errorf("error creating DB file: %w", err)
	}
	return f.Close()
}

// dbFilePath extracts the file path from a go-sqlite3 DSN. It reports false
// for in-memory databases.
func dbFilePath(dsn string) (string, bool) {
	path, params, _ := strings.Cut(dsn, "?")
	path = strings.TrimPrefix(path, "file:")

	if path == "" || path == ":memory:" || strings.Contains(params, "mode=memory") {
		return "", false
	}
	return path, true
}
