package validators

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-hist-keeper/internal/timefmt"
	"github.com/MKhiriev/go-hist-keeper/models"
)

const (
	FieldID        = "id"
	FieldTimestamp = "timestamp"
	FieldDeletedAt = "deleted_at"
	FieldText      = "text"
	FieldBatch     = "batch"
)

type HistoryValidator struct {
}

func NewHistoryValidator() Validator {
	return &HistoryValidator{}
}

// Validate accepts a History, a pointer to one, or a batch ([]models.History).
// Every returned error wraps ErrInvalidHistory and the specific sentinel.
func (v *HistoryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.History:
		return v.validateHistory(ctx, value, fields...)
	case *models.History:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateHistory(ctx, *value, fields...)

	case []models.History:
		return v.validateBatch(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *HistoryValidator) validateHistory(ctx context.Context, h models.History, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTimestamp, FieldDeletedAt, FieldText}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !utf8.ValidString(h.ID) {
				return invalid(h.ID, ErrInvalidText, "id")
			}
		case FieldTimestamp:
			// zero is replaced with the sealing time
			if !h.Timestamp.IsZero() {
				if err := encodable(h.Timestamp); err != nil {
					return invalid(h.ID, err, "timestamp")
				}
			}
		case FieldDeletedAt:
			if h.DeletedAt != nil {
				if err := encodable(*h.DeletedAt); err != nil {
					return invalid(h.ID, err, "deleted_at")
				}
			}
		case FieldText:
			for name, value := range map[string]string{
				"command":  h.Command,
				"cwd":      h.Cwd,
				"session":  h.Session,
				"hostname": h.Hostname,
			} {
				if !utf8.ValidString(value) {
					return invalid(h.ID, ErrInvalidText, name)
				}
			}
		case FieldBatch:
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBatch checks each entry and, unless fields excludes FieldBatch,
// that no two entries share an explicit id. Entries without an id get a
// fresh one later and never collide.
func (v *HistoryValidator) validateBatch(ctx context.Context, batch []models.History, fields ...string) error {
	if len(batch) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidHistory, ErrEmptyBatch)
	}

	checkBatch := len(fields) == 0
	for _, f := range fields {
		if f == FieldBatch {
			checkBatch = true
		}
	}

	seen := make(map[string]int, len(batch))
	for i, h := range batch {
		if err := v.validateHistory(ctx, h, fields...); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		if !checkBatch || h.ID == "" {
			continue
		}
		if first, ok := seen[h.ID]; ok {
			return fmt.Errorf("entry %d: %w: %w: %q also used by entry %d", i+1, ErrInvalidHistory, ErrDuplicateID, h.ID, first+1)
		}
		seen[h.ID] = i
	}

	return nil
}

func encodable(t time.Time) error {
	if _, err := timefmt.Format(t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}
	return nil
}

func invalid(id string, err error, field string) error {
	if id == "" {
		return fmt.Errorf("%w: %s: %w", ErrInvalidHistory, field, err)
	}
	return fmt.Errorf("%w %q: %s: %w", ErrInvalidHistory, id, field, err)
}
