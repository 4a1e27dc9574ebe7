package profilematch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
	domprofile "github.com/kailas-cloud/profilematch/internal/domain/profile"
	"github.com/kailas-cloud/profilematch/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/profilematch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/profilematch/internal/usecase/match"
)

// Client is the profilematch SDK entry point. It is safe for concurrent use.
type Client struct {
	matcher   matchuc.Matcher
	weights   dommatch.WeightTable
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. Invalid options (unknown policy, non-positive or
// duplicate weights, negative candidate limit) are reported here.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.maxCandidates < 0 {
		return nil, fmt.Errorf("profilematch: max candidates must not be negative, got %d", cfg.maxCandidates)
	}
	policy, err := similarity.ParsePolicy(cfg.emptyCorpusPolicy)
	if err != nil {
		return nil, fmt.Errorf("profilematch: %w", err)
	}
	weights, err := dommatch.NewWeightTable(cfg.politicalWeights)
	if err != nil {
		return nil, fmt.Errorf("profilematch: political weights: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	svc := matchuc.New(weights, policy).WithMaxCandidates(cfg.maxCandidates)
	return &Client{
		matcher:   svc,
		weights:   weights,
		healthSvc: healthuc.New(svc),
		obs:       obs,
	}, nil
}

// Rank orders candidates by weighted similarity to user, highest first.
// Ties keep input order.
func (c *Client) Rank(ctx context.Context, user Profile, candidates []Profile) (matches []Match, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rank", start, err) }()
	c.obs.observeCandidates(len(candidates))

	req := &matchuc.Request{
		User:     toDomainProfile(user),
		Profiles: make([]domprofile.Profile, len(candidates)),
	}
	for i := range candidates {
		req.Profiles[i] = toDomainProfile(candidates[i])
	}

	results, err := c.matcher.FindSimilar(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	matches = make([]Match, len(results))
	for i := range results {
		p := results[i].Profile()
		matches[i] = Match{Profile: fromDomainProfile(&p), Score: results[i].Score()}
	}
	return matches, nil
}

// RankJSON ranks a raw {"user": ..., "profiles": [...]} document and returns
// {"suggested_profiles": [...]} with every profile echoed as it was given.
func (c *Client) RankJSON(ctx context.Context, body []byte) (out []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rank_json", start, err) }()

	req, err := matchuc.DecodeRequest(body)
	if err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	c.obs.observeCandidates(len(req.Profiles))

	results, err := c.matcher.FindSimilar(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	out, err = json.Marshal(matchuc.NewResponse(results))
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}

// Weight returns the multiplier a query profile holding view applies to every
// candidate's similarity score. Candidates' own views do not select a weight.
func (c *Client) Weight(view string) float64 {
	return c.weights.Weight(view)
}
