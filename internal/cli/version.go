package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), r.info)
			return err
		},
	}
}
