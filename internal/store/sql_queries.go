package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-hist-keeper/models"
)

const historyTable = "history_blobs"

var historyColumns = []string{"id", "payload", "created_at"}

// sqlBuilder builds SQLite statements with ? placeholders.
var sqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildInsertHistoryQuery inserts one record unless its id is already stored.
func buildInsertHistoryQuery(id string, payload []byte, createdAt int64) (string, []any, error) {
	query, args, err := sqlBuilder.
		Insert(historyTable).
		Options("OR IGNORE").
		Columns(historyColumns...).
		Values(id, payload, createdAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectHistoryByIDQuery(id string) (string, []any, error) {
	query, args, err := sqlBuilder.
		Select(historyColumns...).
		From(historyTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSelectHistoryQuery lists records in creation order. An empty
// filter.IDs means all records; a zero filter.Limit means no limit.
func buildSelectHistoryQuery(filter models.ListFilter) (string, []any, error) {
	builder := sqlBuilder.
		Select(historyColumns...).
		From(historyTable).
		OrderBy("created_at", "id")

	if len(filter.IDs) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateHistoryPayloadQuery replaces the payload of a stored record and
// leaves its creation time alone.
func buildUpdateHistoryPayloadQuery(id string, payload []byte) (string, []any, error) {
	query, args, err := sqlBuilder.
		Update(historyTable).
		Set("payload", payload).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteHistoryQuery(ids []string) (string, []any, error) {
	query, args, err := sqlBuilder.
		Delete(historyTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountHistoryQuery() (string, []any, error) {
	query, args, err := sqlBuilder.
		Select("COUNT(*)").
		From(historyTable).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
