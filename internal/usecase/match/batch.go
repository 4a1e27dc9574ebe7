package match

import (
	"fmt"

	"github.com/kailas-cloud/profilematch/internal/domain"
	"github.com/kailas-cloud/profilematch/internal/domain/profile"
)

// queryIndex is the position of the query document in the similarity space.
const queryIndex = 0

// Batch owns the documents of one request and resolves similarity-space
// indices back to candidates. The query sits at index 0, candidates follow in input order.
type Batch struct {
	candidates []profile.Profile
	documents  []string
}

// NewBatch describes the query and every candidate.
func NewBatch(query *profile.Profile, candidates []profile.Profile) (*Batch, error) {
	documents := make([]string, 0, len(candidates)+1)

	doc, err := Describe(query)
	if err != nil {
		return nil, fmt.Errorf("describe query: %w", err)
	}
	documents = append(documents, doc)

	for i := range candidates {
		doc, err := Describe(&candidates[i])
		if err != nil {
			return nil, fmt.Errorf("describe candidate %d: %w", i, err)
		}
		documents = append(documents, doc)
	}

	return &Batch{candidates: candidates, documents: documents}, nil
}

// Documents returns the batch documents, query first.
func (b *Batch) Documents() []string { return b.documents }

// Len returns the number of documents, query included.
func (b *Batch) Len() int { return len(b.documents) }

// Candidate resolves a similarity-space index to its candidate.
func (b *Batch) Candidate(index int) (profile.Profile, error) {
	if index <= queryIndex || index > len(b.candidates) {
		return profile.Profile{}, domain.NewLookup(index, len(b.candidates)+1)
	}
	return b.candidates[index-1], nil
}
