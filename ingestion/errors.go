package ingestion

import "errors"

var (
	// ErrParserRequired is returned when a parser is not provided.
	ErrParserRequired = errors.New("parser required")

	// ErrVectorRepositoryRequired is returned when an embedder is configured without a vector repository.
	ErrVectorRepositoryRequired = errors.New("vector repository required")

	// ErrEmbedderRequired is returned when a vector repository is configured without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")
)
