package profilematch

import "github.com/kailas-cloud/profilematch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMissingField      = domain.ErrMissingField
	ErrEmptyCorpus       = domain.ErrEmptyCorpus
	ErrLookup            = domain.ErrLookup
	ErrTooManyCandidates = domain.ErrTooManyCandidates
	ErrMalformedRequest  = domain.ErrMalformedRequest
)
