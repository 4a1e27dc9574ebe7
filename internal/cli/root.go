// Package cli implements the profilematch-cli commands for ranking request files offline.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/profilematch/internal/config"
	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
	"github.com/kailas-cloud/profilematch/internal/domain/similarity"
	logpkg "github.com/kailas-cloud/profilematch/internal/logger"
	matchuc "github.com/kailas-cloud/profilematch/internal/usecase/match"
)

const app = "profilematch-cli"

// options are the persistent flags shared by all commands.
type options struct {
	configFile    string
	policy        string
	maxCandidates int
	debug         bool
}

// NewRootCommand builds the command tree. out receives command output.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           app,
		Short:         "profilematch-cli ranks candidate profiles against a query profile",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"a YAML config file; its ranking section supplies weights and policy")
	root.PersistentFlags().StringVar(&opts.policy, "empty-corpus-policy", "",
		"fail or zero; overrides the config file")
	root.PersistentFlags().IntVar(&opts.maxCandidates, "max-candidates", 0,
		"reject requests with more candidates (0 = unlimited); overrides the config file")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output to stderr")

	root.AddCommand(newRankCommand(opts))
	root.AddCommand(newWeightsCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

// buildService assembles the match service from the config file and flag overrides.
func buildService(opts *options) (*matchuc.Service, error) {
	ranking := config.RankingConfig{EmptyCorpusPolicy: string(similarity.PolicyFail)}
	if opts.configFile != "" {
		cfg, err := config.LoadFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		ranking = cfg.Ranking
	}
	if opts.policy != "" {
		ranking.EmptyCorpusPolicy = opts.policy
	}
	if opts.maxCandidates > 0 {
		ranking.MaxCandidates = opts.maxCandidates
	}

	policy, err := similarity.ParsePolicy(ranking.EmptyCorpusPolicy)
	if err != nil {
		return nil, err
	}
	weights, err := dommatch.NewWeightTable(ranking.PoliticalWeights)
	if err != nil {
		return nil, fmt.Errorf("political weights: %w", err)
	}

	return matchuc.New(weights, policy).WithMaxCandidates(ranking.MaxCandidates), nil
}

func newLogger(opts *options) *zap.Logger {
	if !opts.debug {
		return zap.NewNop()
	}
	l, err := logpkg.NewLogger("dev", "debug")
	if err != nil {
		return zap.NewNop()
	}
	return l
}
