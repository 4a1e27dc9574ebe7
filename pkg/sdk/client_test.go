package profilematch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func user() Profile {
	return Profile{
		ID: "u", Hobbies: []string{"hiking", "reading"},
		PoliticalView: "left", Religion: "none", RelationshipGoal: "friendship",
	}
}

func candidates() []Profile {
	return []Profile{
		{ID: "a", Hobbies: []string{"chess"}, PoliticalView: "right", Religion: "catholic", RelationshipGoal: "marriage"},
		{ID: "b", Hobbies: []string{"hiking", "reading"}, PoliticalView: "left", Religion: "none", RelationshipGoal: "friendship"},
		{ID: "c", Hobbies: []string{"hiking"}, PoliticalView: "center", Religion: "none", RelationshipGoal: "marriage"},
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Weight("Left") != 1.1 || c.Weight("right") != 0.9 || c.Weight("green") != 1.0 {
		t.Errorf("unexpected default weights: left=%v right=%v green=%v",
			c.Weight("Left"), c.Weight("right"), c.Weight("green"))
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"policy", []Option{WithEmptyCorpusPolicy("skip")}},
		{"weight", []Option{WithPoliticalWeights(map[string]float64{"left": -1})}},
		{"infinite weight", []Option{WithPoliticalWeights(map[string]float64{"left": math.Inf(1)})}},
		{"max candidates", []Option{WithMaxCandidates(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRank_OrdersByWeightedSimilarity(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	matches, err := c.Rank(context.Background(), user(), candidates())
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("len = %d, want 3", len(matches))
	}

	wantOrder := []string{"b", "c", "a"}
	for i, id := range wantOrder {
		if matches[i].Profile.ID != id {
			t.Errorf("matches[%d] = %q, want %q", i, matches[i].Profile.ID, id)
		}
	}
	if s := matches[0].Score; s < 1.09 || s > 1.11 {
		t.Errorf("identical profile score = %v, want ≈1.1 (left weight)", s)
	}
	if matches[2].Score != 0 {
		t.Errorf("disjoint profile score = %v, want 0", matches[2].Score)
	}
	if got := matches[0].Profile.Hobbies; len(got) != 2 || got[0] != "hiking" {
		t.Errorf("profile not round-tripped: %+v", matches[0].Profile)
	}
}

func TestRank_QueryViewWeightScalesEveryCandidate(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	boosted, err := New(WithPoliticalWeights(map[string]float64{"left": 2}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := boosted.Weight(user().PoliticalView) / base.Weight(user().PoliticalView)
	baseMatches, err := base.Rank(context.Background(), user(), candidates())
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	boostedMatches, err := boosted.Rank(context.Background(), user(), candidates())
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	baseScores := make(map[string]float64, len(baseMatches))
	for _, m := range baseMatches {
		baseScores[m.Profile.ID] = m.Score
	}
	for _, m := range boostedMatches {
		b := baseScores[m.Profile.ID]
		if b == 0 {
			if m.Score != 0 {
				t.Errorf("%s: score = %v, want 0", m.Profile.ID, m.Score)
			}
			continue
		}
		// Candidates hold different views; all are scaled by the query's.
		if ratio := m.Score / b; ratio < want-1e-9 || ratio > want+1e-9 {
			t.Errorf("%s (view %q): ratio = %v, want %v", m.Profile.ID, m.Profile.PoliticalView, ratio, want)
		}
	}
}

func TestRank_Errors(t *testing.T) {
	empty := Profile{ID: "x"}

	c, _ := New(WithMaxCandidates(2))
	if _, err := c.Rank(context.Background(), user(), candidates()); !errors.Is(err, ErrTooManyCandidates) {
		t.Errorf("expected ErrTooManyCandidates, got %v", err)
	}
	if _, err := c.Rank(context.Background(), empty, []Profile{empty}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}

	zero, _ := New(WithEmptyCorpusPolicy("zero"))
	matches, err := zero.Rank(context.Background(), empty, []Profile{empty})
	if err != nil {
		t.Fatalf("zero policy: %v", err)
	}
	if len(matches) != 1 || matches[0].Score != 0 {
		t.Errorf("zero policy: unexpected matches %+v", matches)
	}
}

func TestRankJSON_EchoesProfiles(t *testing.T) {
	c, _ := New()
	body := `{"user": {"id": 7, "hobbies": [{"name": "golf"}], "political_view": "center",
		"religion": "none", "relationship_goal": {"name": "dating"}, "city": "Oslo"},
		"profiles": [{"id": 8, "hobbies": [{"name": "golf"}], "political_view": "center",
		"religion": "none", "relationship_goal": {"name": "dating"}, "city": "Bergen"}]}`

	out, err := c.RankJSON(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("RankJSON: %v", err)
	}

	var resp struct {
		SuggestedProfiles []struct {
			ID      json.Number     `json:"id"`
			Profile json.RawMessage `json:"profile"`
		} `json:"suggested_profiles"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("decode %s: %v", out, err)
	}
	if len(resp.SuggestedProfiles) != 1 || resp.SuggestedProfiles[0].ID != "8" {
		t.Fatalf("unexpected response %s", out)
	}
	if !strings.Contains(string(resp.SuggestedProfiles[0].Profile), `"Bergen"`) {
		t.Errorf("unknown fields not echoed: %s", resp.SuggestedProfiles[0].Profile)
	}
}

func TestRankJSON_Malformed(t *testing.T) {
	c, _ := New()
	if _, err := c.RankJSON(context.Background(), []byte(`{`)); !errors.Is(err, ErrMalformedRequest) {
		t.Errorf("expected ErrMalformedRequest, got %v", err)
	}
	if _, err := c.RankJSON(context.Background(), []byte(`{"profiles": []}`)); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	c, _ := New(WithMaxCandidates(1))
	h := c.Health(context.Background())
	if h.Status != "ok" || h.Checks["ranking"] != "ok" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestObserver_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(WithPrometheus(reg), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _ = c.Rank(context.Background(), user(), candidates())
	_, _ = c.RankJSON(context.Background(), []byte(`nope`))

	m := c.obs.metrics
	if got := testutil.ToFloat64(m.operations.WithLabelValues("rank", "ok")); got != 1 {
		t.Errorf("rank ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("rank_json", "error")); got != 1 {
		t.Errorf("rank_json error = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.candidates); got != 1 {
		t.Errorf("candidates collectors = %d, want 1", got)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(WithPrometheus(reg))
	if err != nil {
		t.Fatalf("first New: %v", err)
	}
	second, err := New(WithPrometheus(reg))
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	if first.obs.metrics.operations != second.obs.metrics.operations {
		t.Error("expected second client to reuse registered counter")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var o *observer
	o.observe("rank", time.Now(), nil)
	o.observeCandidates(3)
}
