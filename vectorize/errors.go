package vectorize

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a retry is requested with fewer than one attempt.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingCount is returned when the embedder answers a batch with the wrong number of vectors.
	ErrEmbeddingCount = errors.New("embedding count mismatch")
)
