package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/profilematch/internal/domain"
)

// Policy decides what Build does with a batch that has no extractable terms.
type Policy string

const (
	// PolicyFail returns domain.ErrEmptyCorpus.
	PolicyFail Policy = "fail"
	// PolicyZero treats every similarity as 0.
	PolicyZero Policy = "zero"
)

// ParsePolicy validates a policy name. An empty name selects PolicyFail.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicyZero:
		return PolicyZero, nil
	default:
		return "", fmt.Errorf("unknown empty corpus policy %q (want %q or %q)", s, PolicyFail, PolicyZero)
	}
}

// entry is one non-zero component of a sparse vector.
type entry struct {
	term   int
	weight float64
}

// vector is a sparse L2-normalized TF-IDF vector with entries sorted by term index.
type vector []entry

// Space is a TF-IDF vector space over one batch of documents.
// It is built per request and never shared.
type Space struct {
	vocabulary []string
	idf        []float64
	vectors    []vector
}

// Build tokenizes docs, computes smoothed IDF over the whole batch and
// L2-normalizes every document vector. Index i of the space is docs[i].
//
// idf(t) = ln((1+n) / (1+df(t))) + 1, weight = count * idf.
func Build(docs []string, policy Policy) (*Space, error) {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	if len(df) == 0 {
		if policy == PolicyZero {
			return &Space{vectors: make([]vector, len(docs))}, nil
		}
		return nil, fmt.Errorf("build similarity space over %d documents: %w", len(docs), domain.ErrEmptyCorpus)
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	index := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(docs))
	for i, term := range vocabulary {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]vector, len(docs))
	for i, tokens := range tokenized {
		vectors[i] = vectorize(tokens, index, idf)
	}

	return &Space{vocabulary: vocabulary, idf: idf, vectors: vectors}, nil
}

func vectorize(tokens []string, index map[string]int, idf []float64) vector {
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		counts[index[tok]]++
	}

	v := make(vector, 0, len(counts))
	for term, count := range counts {
		v = append(v, entry{term: term, weight: float64(count) * idf[term]})
	}
	sort.Slice(v, func(a, b int) bool { return v[a].term < v[b].term })

	var sumSq float64
	for _, e := range v {
		sumSq += e.weight * e.weight
	}
	norm := math.Sqrt(sumSq)
	for k := range v {
		v[k].weight /= norm
	}
	return v
}

// Len returns the number of documents in the space.
func (s *Space) Len() int { return len(s.vectors) }

// Vocabulary returns the sorted terms of the space.
func (s *Space) Vocabulary() []string {
	out := make([]string, len(s.vocabulary))
	copy(out, s.vocabulary)
	return out
}

// IDF returns the inverse document frequency of term, or 0 if the term is not in the vocabulary.
func (s *Space) IDF(term string) float64 {
	i := sort.SearchStrings(s.vocabulary, term)
	if i < len(s.vocabulary) && s.vocabulary[i] == term {
		return s.idf[i]
	}
	return 0
}

// Similarity returns the cosine similarity of documents i and j in [0, 1].
// A document without terms has similarity 0 to every document, itself included.
func (s *Space) Similarity(i, j int) float64 {
	return clamp(dot(s.vectors[i], s.vectors[j]))
}

// Row returns the similarity of document i to every document in the space.
func (s *Space) Row(i int) []float64 {
	row := make([]float64, len(s.vectors))
	for j := range s.vectors {
		row[j] = s.Similarity(i, j)
	}
	return row
}

// Matrix returns the full pairwise similarity matrix.
func (s *Space) Matrix() [][]float64 {
	m := make([][]float64, len(s.vectors))
	for i := range s.vectors {
		m[i] = s.Row(i)
	}
	return m
}

// dot walks both vectors in term order so the summation order is fixed.
func dot(a, b vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			sum += a[i].weight * b[j].weight
			i++
			j++
		case a[i].term < b[j].term:
			i++
		default:
			j++
		}
	}
	return sum
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
