package match

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/profilematch/internal/domain"
	"github.com/kailas-cloud/profilematch/internal/domain/profile"
)

// Request is a validated ranking request: one query profile and its candidates in input order.
type Request struct {
	User     profile.Profile
	Profiles []profile.Profile
}

type wireRequest struct {
	User     json.RawMessage    `json:"user"`
	Profiles *[]json.RawMessage `json:"profiles"`
}

// DecodeRequest parses {"user": ..., "profiles": [...]} and validates every profile.
func DecodeRequest(data []byte) (Request, error) {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return Request{}, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}

	if len(w.User) == 0 {
		return Request{}, domain.NewMissingField("user")
	}
	user, err := profile.Decode("user", w.User)
	if err != nil {
		return Request{}, err
	}

	if w.Profiles == nil {
		return Request{}, domain.NewMissingField("profiles")
	}
	candidates := make([]profile.Profile, len(*w.Profiles))
	for i, raw := range *w.Profiles {
		p, err := profile.Decode(fmt.Sprintf("profiles[%d]", i), raw)
		if err != nil {
			return Request{}, err
		}
		candidates[i] = p
	}

	return Request{User: user, Profiles: candidates}, nil
}
