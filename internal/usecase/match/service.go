package match

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kailas-cloud/profilematch/internal/domain"
	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
	"github.com/kailas-cloud/profilematch/internal/domain/profile"
	"github.com/kailas-cloud/profilematch/internal/domain/similarity"
	"github.com/kailas-cloud/profilematch/internal/logger"
	"github.com/kailas-cloud/profilematch/internal/tracing"
)

// Service ranks candidates by TF-IDF similarity to the query, weighted by the
// query's political view. All derived state lives for one call only; the
// weight table is the only shared value and is read-only.
type Service struct {
	weights       dommatch.WeightTable
	policy        similarity.Policy
	maxCandidates int
}

var _ Matcher = (*Service)(nil)

// New creates a match service.
func New(weights dommatch.WeightTable, policy similarity.Policy) *Service {
	return &Service{weights: weights, policy: policy}
}

// WithMaxCandidates bounds the candidate list. 0 disables the bound.
func (s *Service) WithMaxCandidates(n int) *Service {
	if n > 0 {
		s.maxCandidates = n
	}
	return s
}

// Weights returns the weight table in use.
func (s *Service) Weights() dommatch.WeightTable { return s.weights }

// FindSimilar returns one result per candidate, best match first.
func (s *Service) FindSimilar(ctx context.Context, req *Request) (_ []dommatch.Result, err error) {
	ctx, end := tracing.StartSpan(ctx, "match.find_similar",
		attribute.Int("match.candidates", len(req.Profiles)),
	)
	defer func() { end(err) }()

	if s.maxCandidates > 0 && len(req.Profiles) > s.maxCandidates {
		return nil, domain.NewCandidateLimit(len(req.Profiles), s.maxCandidates)
	}

	batch, err := NewBatch(&req.User, req.Profiles)
	if err != nil {
		return nil, fmt.Errorf("build batch: %w", err)
	}

	space, err := buildSpace(ctx, batch, s.policy)
	if err != nil {
		return nil, fmt.Errorf("similarity space: %w", err)
	}

	weight := s.weights.Weight(req.User.PoliticalView())
	results, err := rank(space.Row(queryIndex), batch, weight)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	tracing.SetAttributes(ctx,
		attribute.Int("match.vocabulary", len(space.Vocabulary())),
		attribute.Float64("match.weight", weight),
	)

	logger.FromContext(ctx).Debug("Ranked candidates",
		zap.Int("candidates", len(req.Profiles)),
		zap.Int("vocabulary", len(space.Vocabulary())),
		zap.String("political_view", dommatch.NormalizeView(req.User.PoliticalView())),
		zap.Float64("weight", weight),
	)

	return results, nil
}

func buildSpace(ctx context.Context, batch *Batch, policy similarity.Policy) (_ *similarity.Space, err error) {
	_, end := tracing.StartSpan(ctx, "similarity.build",
		attribute.Int("similarity.documents", batch.Len()),
	)
	defer func() { end(err) }()

	return similarity.Build(batch.Documents(), policy)
}

// HealthCheck ranks a fixed two-candidate request and verifies the ordering.
func (s *Service) HealthCheck(ctx context.Context) error {
	req := &Request{
		User: profile.New("health-user", []string{"hiking"}, "center", "none", "friendship"),
		Profiles: []profile.Profile{
			profile.New("health-far", []string{"chess"}, "other", "other", "other"),
			profile.New("health-near", []string{"hiking"}, "center", "none", "friendship"),
		},
	}

	unbounded := &Service{weights: s.weights, policy: s.policy}
	results, err := unbounded.FindSimilar(ctx, req)
	if err != nil {
		return fmt.Errorf("health ranking: %w", err)
	}
	if len(results) != len(req.Profiles) || results[0].ID() != "health-near" {
		return errors.New("health ranking returned unexpected order")
	}
	return nil
}
