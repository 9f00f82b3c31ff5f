// Package migrations embeds the SQL schema of the local history store and
// applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/go-hist-keeper/internal/logger"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate brings the schema of db up to date. Progress is reported through
// log at debug level; a nil log discards it.
func Migrate(db *sql.DB, log *logger.Logger) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}
	if log == nil {
		log = logger.Nop()
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{log})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// gooseLogger routes goose output into zerolog so standard output stays
// reserved for command results.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug().Str("func", "migrations.Migrate").Msgf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error().Str("func", "migrations.Migrate").Msgf(format, v...)
}
