package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/profilematch/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", app, info.Version, info.Commit, info.Date)
		},
	}
}
