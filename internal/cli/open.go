package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-hist-keeper/internal/app"
	"github.com/MKhiriev/go-hist-keeper/models"
)

func (r *runner) newOpenCommand() *cobra.Command {
	var (
		limit       uint64
		hideDeleted bool
	)

	cmd := &cobra.Command{
		Use:   "open [id...]",
		Short: "Decrypt stored history and print it as JSON lines",
		Long: `Decrypts the given entries, in the order given, or every stored entry
in the order they were sealed when no id is given. Prints one JSON object
per line. An id that is not stored is an error.

--hide-deleted is applied before --limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *app.App) error {
				filter := models.ListFilter{Limit: limit, HideDeleted: hideDeleted}

				var (
					entries []models.History
					err     error
				)
				if len(args) == 0 {
					entries, err = a.History.OpenAll(ctx, filter)
				} else {
					entries, err = openEach(ctx, a, args, filter)
				}
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, h := range entries {
					if err = enc.Encode(h); err != nil {
						return fmt.Errorf("write history %s: %w", h.ID, err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Uint64VarP(&limit, "limit", "n", 0, "maximum number of entries to print (0 means all)")
	cmd.Flags().BoolVar(&hideDeleted, "hide-deleted", false, "skip entries marked as deleted")
	return cmd
}

// openEach opens every id in turn so the first unknown id fails the command
// before anything is printed.
func openEach(ctx context.Context, a *app.App, ids []string, filter models.ListFilter) ([]models.History, error) {
	var entries []models.History
	for _, id := range ids {
		h, err := a.History.Open(ctx, id)
		if err != nil {
			return nil, err
		}
		if filter.HideDeleted && h.IsDeleted() {
			continue
		}
		if filter.Limit > 0 && uint64(len(entries)) == filter.Limit {
			continue
		}
		entries = append(entries, h)
	}
	return entries, nil
}

func (r *runner) newDeleteCommand() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "delete id...",
		Short: "Mark stored history entries as deleted",
		Long: `Marks entries as deleted: the command text is cleared, deleted_at is set
and the entry is encrypted again. With --purge the entries are removed
from the store instead. Unknown ids are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if purge {
					purged, err := a.History.Purge(ctx, args...)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d of %d\n", purged, len(args))
					return err
				}

				deleted, err := a.History.Delete(ctx, args...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d of %d\n", deleted, len(args))
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "remove the entries instead of marking them deleted")
	return cmd
}

func (r *runner) newCountCommand() *cobra.Command {
	var includeDeleted bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(ctx context.Context, a *app.App) error {
				count, err := a.History.Count(ctx, includeDeleted)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false, "count entries marked as deleted too")
	return cmd
}
