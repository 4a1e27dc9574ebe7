package match

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// IdentityWeight applies to political views absent from the table.
const IdentityWeight = 1.0

// defaultWeights is the built-in political-view weight table.
var defaultWeights = map[string]float64{
	"left":   1.1,
	"center": 1.0,
	"right":  0.9,
}

// WeightTable maps a normalized political view to a ranking multiplier.
// It is read-only after construction and safe for concurrent use.
type WeightTable struct {
	weights map[string]float64
}

// DefaultWeightTable returns the built-in table.
func DefaultWeightTable() WeightTable {
	t, _ := NewWeightTable(defaultWeights)
	return t
}

// NewWeightTable validates and copies weights. Keys are normalized with NormalizeView.
// An empty map yields the default table.
func NewWeightTable(weights map[string]float64) (WeightTable, error) {
	if len(weights) == 0 {
		weights = defaultWeights
	}

	normalized := make(map[string]float64, len(weights))
	for label, w := range weights {
		key := NormalizeView(label)
		if key == "" {
			return WeightTable{}, fmt.Errorf("political view label must not be empty")
		}
		if !(w > 0) || math.IsInf(w, 0) {
			return WeightTable{}, fmt.Errorf("weight for %q must be positive and finite, got %v", label, w)
		}
		if _, dup := normalized[key]; dup {
			return WeightTable{}, fmt.Errorf("duplicate political view label %q after normalization", key)
		}
		normalized[key] = w
	}
	return WeightTable{weights: normalized}, nil
}

// NormalizeView folds case and trims surrounding whitespace.
func NormalizeView(view string) string {
	return strings.ToLower(strings.TrimSpace(view))
}

// Weight returns the multiplier for view, or IdentityWeight if the view is unknown.
func (t WeightTable) Weight(view string) float64 {
	if w, ok := t.weights[NormalizeView(view)]; ok {
		return w
	}
	return IdentityWeight
}

// Labels returns the known labels in sorted order.
func (t WeightTable) Labels() []string {
	labels := make([]string, 0, len(t.weights))
	for label := range t.weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
