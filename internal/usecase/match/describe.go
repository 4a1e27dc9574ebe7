package match

import (
	"strings"

	"github.com/kailas-cloud/profilematch/internal/domain/profile"
)

// Describe projects a profile to its document text:
// hobby names, then political view, religion and relationship goal, space separated.
// An empty hobby list leaves a leading space.
func Describe(p *profile.Profile) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(p.Hobbies(), " "))
	for _, field := range []string{p.PoliticalView(), p.Religion(), p.RelationshipGoal()} {
		b.WriteByte(' ')
		b.WriteString(field)
	}
	return b.String(), nil
}
