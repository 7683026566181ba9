package storage

import (
	"context"

	"github.com/poiesic/topicmatch/core"
)

// Repository holds the operations shared by every repository.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// DocumentRepository persists parsed documents keyed by label.
type DocumentRepository interface {
	Repository

	// PutDocuments stores documents, replacing any stored under the same label.
	// A replaced document keeps its original registration position.
	PutDocuments(ctx context.Context, docs ...*core.Document) error

	// GetDocument retrieves a document by label.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, label string) (*core.Document, error)

	// HasDocument reports whether a document with the given label and
	// fingerprint is stored.
	HasDocument(ctx context.Context, label string, fingerprint core.ID) (bool, error)

	// DeleteDocuments removes documents by label.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, labels ...string) error

	// DeleteAllDocuments removes every stored document.
	DeleteAllDocuments(ctx context.Context) error

	// Labels returns the stored labels in registration order.
	Labels(ctx context.Context) ([]string, error)

	// ForEachDocument calls fn for every stored document in registration order.
	// Iteration stops at the first error returned by fn.
	ForEachDocument(ctx context.Context, fn func(*core.Document) error) error
}

// VectorRepository persists embedding vectors keyed by lemma.
type VectorRepository interface {
	Repository

	// PutVectors stores vectors, replacing any stored for the same lemma.
	PutVectors(ctx context.Context, vectors ...*core.LemmaVector) error

	// GetVector retrieves the vector of a lemma.
	// Returns ErrNotFound if no vector is stored.
	GetVector(ctx context.Context, lemma string) (*core.LemmaVector, error)

	// GetVectors retrieves the vectors of several lemmas.
	// Returns only the vectors that exist (no error for missing lemmas).
	GetVectors(ctx context.Context, lemmas ...string) ([]*core.LemmaVector, error)

	// DeleteAllVectors removes every stored vector.
	DeleteAllVectors(ctx context.Context) error

	// CountVectors returns the number of stored vectors.
	CountVectors(ctx context.Context) (int, error)

	// FindSimilar finds lemmas whose vectors are similar to the given vector.
	// Returns lemmas with similarity >= minSimilarity, up to limit results,
	// ordered by similarity (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ScoredLemma, error)
}
