package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-hist-keeper/internal/app"
	"github.com/MKhiriev/go-hist-keeper/internal/crypto"
)

func (r *runner) newKeyCommand() *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Print the encryption key, creating it on first use",
		Long: `Prints the installation key in its portable text form.

If no key file exists yet a new key is generated and written first.
An existing key file is never replaced, even when it cannot be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := r.setup(cmd); err != nil {
				return err
			}

			keys := app.NewKeyStore(r.cfg, r.log)
			_, statErr := os.Stat(keys.Path())
			created := errors.Is(statErr, fs.ErrNotExist)

			key, err := keys.Load()
			if err != nil {
				return err
			}
			if created {
				warn(cmd.ErrOrStderr(), "created a new key at %s; back it up, stored history cannot be read without it", keys.Path())
			}

			return printKey(cmd, key)
		},
	}

	keyCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the encryption key; fails if one already exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := r.setup(cmd); err != nil {
				return err
			}

			keys := app.NewKeyStore(r.cfg, r.log)
			key, err := keys.Create()
			if err != nil {
				return err
			}
			warn(cmd.ErrOrStderr(), "created a new key at %s; back it up, stored history cannot be read without it", keys.Path())

			return printKey(cmd, key)
		},
	})

	return keyCmd
}

func printKey(cmd *cobra.Command, key crypto.Key) error {
	encoded, err := crypto.EncodeKey(key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return err
}
