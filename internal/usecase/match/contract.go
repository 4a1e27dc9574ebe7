package match

import (
	"context"

	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
)

// Matcher ranks a request's candidates against its query profile.
type Matcher interface {
	FindSimilar(ctx context.Context, req *Request) ([]dommatch.Result, error)
}

// Response is the wire shape of a successful ranking.
type Response struct {
	SuggestedProfiles []dommatch.Result `json:"suggested_profiles"`
}

// NewResponse wraps results, encoding an empty list as [] rather than null.
func NewResponse(results []dommatch.Result) Response {
	if results == nil {
		results = []dommatch.Result{}
	}
	return Response{SuggestedProfiles: results}
}
