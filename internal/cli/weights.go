package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
)

func newWeightsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the effective political-view weight table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(opts)
			if err != nil {
				return err
			}

			table := svc.Weights()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VIEW\tWEIGHT")
			for _, label := range table.Labels() {
				fmt.Fprintf(w, "%s\t%g\n", label, table.Weight(label))
			}
			fmt.Fprintf(w, "(other)\t%g\n", dommatch.IdentityWeight)
			return w.Flush()
		},
	}
}
