package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField signals a profile or request lacking a required field.
	ErrMissingField = errors.New("missing field")
	// ErrEmptyCorpus signals a batch of documents with no extractable terms.
	ErrEmptyCorpus = errors.New("empty corpus: documents contain no extractable terms")
	// ErrLookup signals a similarity index that does not resolve to a candidate.
	ErrLookup = errors.New("candidate lookup failed")
	// ErrTooManyCandidates signals a candidate list above the configured bound.
	ErrTooManyCandidates = errors.New("too many candidates")
	// ErrMalformedRequest signals a request body that is not valid JSON of the expected shape.
	ErrMalformedRequest = errors.New("malformed request")
)

// MissingFieldError wraps ErrMissingField with the path of the offending field.
type MissingFieldError struct {
	Path string
	// WrongType is set when the field is present but not of the expected JSON type.
	WrongType bool
}

func (e *MissingFieldError) Error() string {
	if e.WrongType {
		return fmt.Sprintf("invalid field: %s has wrong type", e.Path)
	}
	return fmt.Sprintf("%s: %s", ErrMissingField.Error(), e.Path)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// NewMissingField creates a missing field error for the given path.
func NewMissingField(path string) error {
	return &MissingFieldError{Path: path}
}

// NewInvalidField creates an error for a field present with the wrong type.
func NewInvalidField(path string) error {
	return &MissingFieldError{Path: path, WrongType: true}
}

// LookupError wraps ErrLookup with the unresolved index and the batch size.
type LookupError struct {
	Index int
	Size  int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: similarity index %d outside candidate range [1, %d)",
		ErrLookup.Error(), e.Index, e.Size)
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// NewLookup creates a lookup error.
func NewLookup(index, size int) error {
	return &LookupError{Index: index, Size: size}
}

// CandidateLimitError wraps ErrTooManyCandidates with the observed count and the limit.
type CandidateLimitError struct {
	Count int
	Limit int
}

func (e *CandidateLimitError) Error() string {
	return fmt.Sprintf("%s: got %d, limit is %d", ErrTooManyCandidates.Error(), e.Count, e.Limit)
}

func (e *CandidateLimitError) Unwrap() error { return ErrTooManyCandidates }

// NewCandidateLimit creates a candidate limit error.
func NewCandidateLimit(count, limit int) error {
	return &CandidateLimitError{Count: count, Limit: limit}
}
