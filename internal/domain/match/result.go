package match

import (
	"encoding/json"

	"github.com/kailas-cloud/profilematch/internal/domain/profile"
)

// Result is a candidate profile paired with its final weighted score.
type Result struct {
	profile profile.Profile
	score   float64
}

// NewResult creates a scored result.
func NewResult(p profile.Profile, score float64) Result {
	return Result{profile: p, score: score}
}

// ID returns the candidate identifier.
func (r *Result) ID() string { return r.profile.ID() }

// Profile returns the candidate profile.
func (r *Result) Profile() profile.Profile { return r.profile }

// Score returns the weighted similarity score.
func (r *Result) Score() float64 { return r.score }

// MarshalJSON encodes {id, profile, score} with id and profile echoed from the input.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      json.RawMessage `json:"id"`
		Profile json.RawMessage `json:"profile"`
		Score   float64         `json:"score"`
	}{
		ID:      r.profile.RawID(),
		Profile: r.profile.JSON(),
		Score:   r.score,
	})
}
