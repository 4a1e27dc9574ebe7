package profile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/profilematch/internal/domain"
)

const validProfile = `{
	"id": "u-1",
	"hobbies": [{"name": "hiking"}, {"name": "chess"}],
	"political_view": "Left",
	"religion": "none",
	"relationship_goal": {"name": "friendship"},
	"age": 31
}`

func TestDecode_Valid(t *testing.T) {
	p, err := Decode("user", json.RawMessage(validProfile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "u-1" {
		t.Errorf("ID() = %q", p.ID())
	}
	if string(p.RawID()) != `"u-1"` {
		t.Errorf("RawID() = %s", p.RawID())
	}
	if len(p.Hobbies()) != 2 || p.Hobbies()[0] != "hiking" || p.Hobbies()[1] != "chess" {
		t.Errorf("Hobbies() = %v", p.Hobbies())
	}
	if p.PoliticalView() != "Left" {
		t.Errorf("PoliticalView() = %q", p.PoliticalView())
	}
	if p.Religion() != "none" {
		t.Errorf("Religion() = %q", p.Religion())
	}
	if p.RelationshipGoal() != "friendship" {
		t.Errorf("RelationshipGoal() = %q", p.RelationshipGoal())
	}
	if string(p.JSON()) != validProfile {
		t.Errorf("JSON() must echo the input verbatim, got %s", p.JSON())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDecode_NumericID(t *testing.T) {
	raw := `{"id": 42, "hobbies": [], "political_view": "", "religion": "", "relationship_goal": {"name": ""}}`
	p, err := Decode("user", json.RawMessage(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "42" {
		t.Errorf("ID() = %q, want 42", p.ID())
	}
	if string(p.RawID()) != "42" {
		t.Errorf("RawID() = %s", p.RawID())
	}
	if p.Hobbies() == nil || len(p.Hobbies()) != 0 {
		t.Errorf("Hobbies() = %#v, want empty non-nil", p.Hobbies())
	}
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		path string
	}{
		{"null profile", `null`, "profiles[2]"},
		{"no id", `{"hobbies": [], "political_view": "x", "religion": "y", "relationship_goal": {"name": "z"}}`,
			"profiles[2].id"},
		{"null id", `{"id": null, "hobbies": [], "political_view": "x", "religion": "y",
			"relationship_goal": {"name": "z"}}`, "profiles[2].id"},
		{"no hobbies", `{"id": 1, "political_view": "x", "religion": "y", "relationship_goal": {"name": "z"}}`,
			"profiles[2].hobbies"},
		{"hobby without name", `{"id": 1, "hobbies": [{"name": "a"}, {}], "political_view": "x", "religion": "y",
			"relationship_goal": {"name": "z"}}`, "profiles[2].hobbies[1].name"},
		{"no political view", `{"id": 1, "hobbies": [], "religion": "y", "relationship_goal": {"name": "z"}}`,
			"profiles[2].political_view"},
		{"no religion", `{"id": 1, "hobbies": [], "political_view": "x", "relationship_goal": {"name": "z"}}`,
			"profiles[2].religion"},
		{"no goal", `{"id": 1, "hobbies": [], "political_view": "x", "religion": "y"}`,
			"profiles[2].relationship_goal"},
		{"goal without name", `{"id": 1, "hobbies": [], "political_view": "x", "religion": "y",
			"relationship_goal": {}}`, "profiles[2].relationship_goal.name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode("profiles[2]", json.RawMessage(tc.raw))
			if !errors.Is(err, domain.ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			var mfe *domain.MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("expected *MissingFieldError, got %T", err)
			}
			if mfe.Path != tc.path {
				t.Errorf("Path = %q, want %q", mfe.Path, tc.path)
			}
			if mfe.WrongType {
				t.Error("WrongType should be false for absent fields")
			}
		})
	}
}

func TestDecode_WrongType(t *testing.T) {
	raw := `{"id": 1, "hobbies": [], "political_view": 7, "religion": "y", "relationship_goal": {"name": "z"}}`
	_, err := Decode("user", json.RawMessage(raw))

	var mfe *domain.MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected *MissingFieldError, got %v", err)
	}
	if !mfe.WrongType {
		t.Error("expected WrongType")
	}
	if mfe.Path != "user.political_view" {
		t.Errorf("Path = %q", mfe.Path)
	}
}

func TestDecode_HobbyWrongTypeCarriesIndex(t *testing.T) {
	tests := []struct {
		name    string
		hobbies string
		want    string
	}{
		{"name not a string", `[{"name": "a"}, {"name": 5}]`, "user.hobbies[1].name"},
		{"element not an object", `[{"name": "a"}, 5]`, "user.hobbies[1]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{"id": "u", "hobbies": ` + tc.hobbies +
				`, "political_view": "x", "religion": "y", "relationship_goal": {"name": "z"}}`
			_, err := Decode("user", json.RawMessage(raw))

			if !errors.Is(err, domain.ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			var mfe *domain.MissingFieldError
			if !errors.As(err, &mfe) || !mfe.WrongType {
				t.Fatalf("expected wrong-type field error, got %v", err)
			}
			if mfe.Path != tc.want {
				t.Errorf("Path = %q, want %q", mfe.Path, tc.want)
			}
		})
	}
}

func TestDecode_NotAnObject(t *testing.T) {
	_, err := Decode("user", json.RawMessage(`["a"]`))
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestNew_RoundTripsThroughDecode(t *testing.T) {
	p := New("c-7", []string{"hiking"}, "left", "none", "friendship")

	decoded, err := Decode("", p.JSON())
	if err != nil {
		t.Fatalf("Decode(New().JSON()) failed: %v", err)
	}
	if decoded.ID() != "c-7" || decoded.PoliticalView() != "left" || decoded.RelationshipGoal() != "friendship" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestNew_CopiesHobbies(t *testing.T) {
	hobbies := []string{"hiking"}
	p := New("c-1", hobbies, "", "", "")
	hobbies[0] = "mutated"

	if p.Hobbies()[0] != "hiking" {
		t.Error("hobby mutation leaked into profile")
	}
}

func TestValidate_ZeroProfile(t *testing.T) {
	var p Profile
	if err := p.Validate(); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}
