package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/profilematch/internal/logger"
	matchuc "github.com/kailas-cloud/profilematch/internal/usecase/match"
)

func newRankCommand(opts *options) *cobra.Command {
	var (
		file   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a {\"user\", \"profiles\"} request read from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			svc, err := buildService(opts)
			if err != nil {
				return err
			}

			req, err := matchuc.DecodeRequest(data)
			if err != nil {
				return err
			}

			logger := newLogger(opts)
			defer func() { _ = logger.Sync() }()
			ctx := logpkg.ContextWithLogger(cmd.Context(), logger.With(zap.String("source", sourceName(file))))

			results, err := svc.FindSimilar(ctx, &req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(matchuc.NewResponse(results))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request JSON file (default: stdin)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the JSON output")
	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}
	return data, nil
}

func sourceName(file string) string {
	if file == "" || file == "-" {
		return "stdin"
	}
	return file
}
