package match

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/profilematch/internal/domain"
	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
	"github.com/kailas-cloud/profilematch/internal/logger"
	"github.com/kailas-cloud/profilematch/internal/metrics"
)

// InstrumentedMatcher wraps a Matcher with Prometheus metrics and logging.
type InstrumentedMatcher struct {
	inner Matcher
}

var _ Matcher = (*InstrumentedMatcher)(nil)

// NewInstrumentedMatcher wraps inner with observability.
func NewInstrumentedMatcher(inner Matcher) *InstrumentedMatcher {
	return &InstrumentedMatcher{inner: inner}
}

// FindSimilar delegates to the inner matcher and records outcome, latency and batch size.
func (m *InstrumentedMatcher) FindSimilar(ctx context.Context, req *Request) ([]dommatch.Result, error) {
	start := time.Now()

	results, err := m.inner.FindSimilar(ctx, req)

	duration := time.Since(start)
	metrics.RankDuration.Observe(duration.Seconds())
	metrics.RankCandidates.Observe(float64(len(req.Profiles)))

	log := logger.FromContext(ctx)
	if err != nil {
		metrics.RankRequestsTotal.WithLabelValues("error").Inc()
		metrics.RankErrorsTotal.WithLabelValues(errorType(err)).Inc()
		log.Warn("Ranking failed",
			zap.Int("candidates", len(req.Profiles)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.RankRequestsTotal.WithLabelValues("ok").Inc()
	log.Debug("Ranking completed",
		zap.Int("candidates", len(req.Profiles)),
		zap.Int("results", len(results)),
		zap.Duration("duration", duration),
	)
	return results, nil
}

// errorType maps an error to a low-cardinality metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return "missing_field"
	case errors.Is(err, domain.ErrEmptyCorpus):
		return "empty_corpus"
	case errors.Is(err, domain.ErrLookup):
		return "lookup"
	case errors.Is(err, domain.ErrTooManyCandidates):
		return "too_many_candidates"
	default:
		return "other"
	}
}
