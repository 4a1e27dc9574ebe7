package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/kailas-cloud/profilematch/internal/domain"
)

// Profile is a validated, immutable person profile.
// The original JSON is retained so results can echo it verbatim.
type Profile struct {
	id               json.RawMessage
	hobbies          []string
	politicalView    string
	religion         string
	relationshipGoal string
	raw              json.RawMessage
}

type wireName struct {
	Name *string `json:"name"`
}

type wireProfile struct {
	ID               json.RawMessage `json:"id"`
	Hobbies          *[]wireName     `json:"hobbies"`
	PoliticalView    *string         `json:"political_view"`
	Religion         *string         `json:"religion"`
	RelationshipGoal *wireName       `json:"relationship_goal"`
}

// wireInput is wireProfile with hobbies left raw so element errors carry their index.
type wireInput struct {
	ID               json.RawMessage    `json:"id"`
	Hobbies          *[]json.RawMessage `json:"hobbies"`
	PoliticalView    *string            `json:"political_view"`
	Religion         *string            `json:"religion"`
	RelationshipGoal *wireName          `json:"relationship_goal"`
}

// New creates a Profile from plain values.
func New(id string, hobbies []string, politicalView, religion, relationshipGoal string) Profile {
	rawID, _ := json.Marshal(id)

	names := make([]wireName, len(hobbies))
	for i := range hobbies {
		names[i] = wireName{Name: &hobbies[i]}
	}
	raw, _ := json.Marshal(wireProfile{
		ID:               rawID,
		Hobbies:          &names,
		PoliticalView:    &politicalView,
		Religion:         &religion,
		RelationshipGoal: &wireName{Name: &relationshipGoal},
	})

	return Profile{
		id:               rawID,
		hobbies:          append(make([]string, 0, len(hobbies)), hobbies...),
		politicalView:    politicalView,
		religion:         religion,
		relationshipGoal: relationshipGoal,
		raw:              raw,
	}
}

// Decode parses and validates a profile. path prefixes field names in errors,
// e.g. "profiles[3]" yields "profiles[3].relationship_goal.name".
func Decode(path string, data json.RawMessage) (Profile, error) {
	if isNull(data) {
		return Profile{}, domain.NewMissingField(path)
	}

	var w wireInput
	if err := json.Unmarshal(data, &w); err != nil {
		return Profile{}, invalidField(path, err)
	}
	var names []wireName
	if w.Hobbies != nil {
		names = make([]wireName, len(*w.Hobbies))
		for i, elem := range *w.Hobbies {
			if err := json.Unmarshal(elem, &names[i]); err != nil {
				return Profile{}, invalidField(join(path, "hobbies["+strconv.Itoa(i)+"]"), err)
			}
		}
	}

	if isNull(w.ID) {
		return Profile{}, domain.NewMissingField(join(path, "id"))
	}
	if w.Hobbies == nil {
		return Profile{}, domain.NewMissingField(join(path, "hobbies"))
	}
	hobbies := make([]string, len(names))
	for i, h := range names {
		if h.Name == nil {
			return Profile{}, domain.NewMissingField(join(path, "hobbies["+strconv.Itoa(i)+"].name"))
		}
		hobbies[i] = *h.Name
	}
	if w.PoliticalView == nil {
		return Profile{}, domain.NewMissingField(join(path, "political_view"))
	}
	if w.Religion == nil {
		return Profile{}, domain.NewMissingField(join(path, "religion"))
	}
	if w.RelationshipGoal == nil {
		return Profile{}, domain.NewMissingField(join(path, "relationship_goal"))
	}
	if w.RelationshipGoal.Name == nil {
		return Profile{}, domain.NewMissingField(join(path, "relationship_goal.name"))
	}

	return Profile{
		id:               append(json.RawMessage(nil), w.ID...),
		hobbies:          hobbies,
		politicalView:    *w.PoliticalView,
		religion:         *w.Religion,
		relationshipGoal: *w.RelationshipGoal.Name,
		raw:              append(json.RawMessage(nil), data...),
	}, nil
}

func invalidField(path string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domain.NewInvalidField(join(path, typeErr.Field))
	}
	return domain.NewInvalidField(path)
}

// Validate reports whether the profile was built by New or Decode.
// A zero Profile has no id and no hobby sequence.
func (p *Profile) Validate() error {
	if len(p.id) == 0 {
		return domain.NewMissingField("id")
	}
	if p.hobbies == nil {
		return domain.NewMissingField("hobbies")
	}
	return nil
}

// ID returns the identifier as text. String ids are unquoted, other JSON values are returned as written.
func (p *Profile) ID() string {
	var s string
	if err := json.Unmarshal(p.id, &s); err == nil {
		return s
	}
	return string(p.id)
}

// RawID returns the identifier exactly as it appeared in the input.
func (p *Profile) RawID() json.RawMessage { return p.id }

// Hobbies returns the hobby names in input order.
func (p *Profile) Hobbies() []string { return p.hobbies }

// PoliticalView returns the political view label.
func (p *Profile) PoliticalView() string { return p.politicalView }

// Religion returns the religion label.
func (p *Profile) Religion() string { return p.religion }

// RelationshipGoal returns the relationship goal name.
func (p *Profile) RelationshipGoal() string { return p.relationshipGoal }

// JSON returns the profile as it was received.
func (p *Profile) JSON() json.RawMessage { return p.raw }

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func join(path, field string) string {
	switch {
	case path == "":
		return field
	case field == "":
		return path
	default:
		return path + "." + field
	}
}
