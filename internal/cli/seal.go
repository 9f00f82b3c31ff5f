package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-hist-keeper/internal/app"
	"github.com/MKhiriev/go-hist-keeper/models"
)

const maxInputLine = 1 << 20

func (r *runner) newSealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seal",
		Short: "Encrypt history entries read from standard input",
		Long: `Reads one JSON history entry per line from standard input, encrypts
each entry and stores it. Prints the id of every entry, in input order.
An entry whose id is already stored is not replaced.

Fields: id, timestamp (RFC 3339), duration, exit, command, cwd, session,
hostname, deleted_at. A missing id or timestamp is generated.`,
		Example: `  echo '{"command":"git status","cwd":"/src","exit":0}' | histkeeper seal`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := readEntries(cmd.InOrStdin())
			if err != nil {
				return err
			}

			return r.withApp(cmd, func(ctx context.Context, a *app.App) error {
				ids, inserted, err := a.History.Seal(ctx, entries...)
				if err != nil {
					return err
				}
				if skipped := int64(len(ids)) - inserted; skipped > 0 {
					warn(cmd.ErrOrStderr(), "%d of %d entries were already stored and kept their existing ciphertext", skipped, len(ids))
				}

				out := cmd.OutOrStdout()
				for _, id := range ids {
					if _, err = fmt.Fprintln(out, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

// readEntries decodes JSON lines, skipping blank ones.
func readEntries(in io.Reader) ([]models.History, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)

	var entries []models.History
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var h models.History
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", app.ErrInvalidInput, line, err)
		}
		entries = append(entries, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", app.ErrInvalidInput, err)
	}

	return entries, nil
}
