package vectorize

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/embedding"
	"github.com/poiesic/topicmatch/storage"
)

// BatchProcessor embeds batches of lemmas and stores the normalized vectors.
type BatchProcessor struct {
	vectors    storage.VectorRepository
	embedder   ai.Embedder
	maxRetries int
	retryDelay time.Duration
}

// NewBatchProcessor creates a batch processor. Embedding calls are attempted
// up to maxRetries times with exponential backoff from retryDelay.
func NewBatchProcessor(vectors storage.VectorRepository, embedder ai.Embedder, maxRetries int, retryDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		vectors:    vectors,
		embedder:   embedder,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Process embeds the lemmas and writes their vectors in one transaction.
func (bp *BatchProcessor) Process(ctx context.Context, lemmas []string) error {
	if len(lemmas) == 0 {
		return nil
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, lemmas)
		return err
	}, bp.maxRetries, bp.retryDelay)
	if err != nil {
		return fmt.Errorf("failed to embed %d lemmas after %d attempts: %w", len(lemmas), bp.maxRetries, err)
	}
	if len(embeddings) != len(lemmas) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCount, len(lemmas), len(embeddings))
	}

	records := make([]*core.LemmaVector, len(lemmas))
	for i, lemma := range lemmas {
		records[i] = &core.LemmaVector{Lemma: lemma, Vector: embedding.NormalizeVector(embeddings[i])}
	}
	if err := bp.vectors.PutVectors(ctx, records...); err != nil {
		return fmt.Errorf("failed to store vectors: %w", err)
	}
	return nil
}
