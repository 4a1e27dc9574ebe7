package profilematch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	politicalWeights  map[string]float64
	emptyCorpusPolicy string
	maxCandidates     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPoliticalWeights replaces the built-in weight table (left 1.1, center 1.0, right 0.9).
// Labels are matched case-insensitively; views missing from the table weigh 1.0.
func WithPoliticalWeights(weights map[string]float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.politicalWeights = weights
	})
}

// WithEmptyCorpusPolicy sets the behavior when no profile yields a single term:
// "fail" (default) returns ErrEmptyCorpus, "zero" scores every candidate 0.
func WithEmptyCorpusPolicy(policy string) Option {
	return optionFunc(func(c *clientConfig) {
		c.emptyCorpusPolicy = policy
	})
}

// WithMaxCandidates rejects requests with more candidates. 0 means unlimited (default).
func WithMaxCandidates(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxCandidates = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
