package profilematch

import (
	domprofile "github.com/kailas-cloud/profilematch/internal/domain/profile"
)

// Profile is a person profile as the SDK accepts and returns it.
type Profile struct {
	ID               string
	Hobbies          []string
	PoliticalView    string
	Religion         string
	RelationshipGoal string
}

// Match is one ranked candidate.
type Match struct {
	Profile Profile
	Score   float64 // cosine similarity times the weight of the query's political view
}

func toDomainProfile(p Profile) domprofile.Profile {
	return domprofile.New(p.ID, p.Hobbies, p.PoliticalView, p.Religion, p.RelationshipGoal)
}

func fromDomainProfile(p *domprofile.Profile) Profile {
	return Profile{
		ID:               p.ID(),
		Hobbies:          append([]string(nil), p.Hobbies()...),
		PoliticalView:    p.PoliticalView(),
		Religion:         p.Religion(),
		RelationshipGoal: p.RelationshipGoal(),
	}
}
