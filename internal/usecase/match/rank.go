package match

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/profilematch/internal/domain"
	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
)

// rank scales the query row by weight, sorts descending (stable, so ties keep
// input order) and resolves every index to its candidate. The query's
// self-similarity at row[0] is never emitted.
func rank(row []float64, batch *Batch, weight float64) ([]dommatch.Result, error) {
	if len(row) != batch.Len() {
		return nil, fmt.Errorf("%w: row has %d entries, batch has %d", domain.ErrLookup, len(row), batch.Len())
	}

	type scored struct {
		index int
		score float64
	}

	items := make([]scored, 0, len(row)-1)
	for i := queryIndex + 1; i < len(row); i++ {
		items = append(items, scored{index: i, score: row[i] * weight})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].score > items[b].score
	})

	results := make([]dommatch.Result, 0, len(items))
	for _, it := range items {
		candidate, err := batch.Candidate(it.index)
		if err != nil {
			return nil, err
		}
		results = append(results, dommatch.NewResult(candidate, it.score))
	}
	return results, nil
}
