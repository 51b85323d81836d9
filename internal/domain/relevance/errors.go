package relevance

import "errors"

// Sentinel kinds for vectorization errors.
var (
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)
