package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/poiesic/topicmatch/storage"
	"github.com/poiesic/topicmatch/vectorize"
)

const (
	embeddingBatchSize  = 100
	embeddingAttempts   = 3
	embeddingRetryDelay = 500 * time.Millisecond
)

// embeddingProcessor stores vectors for the lemmas of new documents.
type embeddingProcessor struct {
	vectors  storage.VectorRepository
	batches  *vectorize.BatchProcessor
	language *phraselet.Language
	logger   *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(vectors storage.VectorRepository, embedder ai.Embedder, language *phraselet.Language, logger *slog.Logger) (processor, error) {
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		vectors:  vectors,
		batches:  vectorize.NewBatchProcessor(vectors, embedder, embeddingAttempts, embeddingRetryDelay),
		language: language,
		logger:   logger.With("processor", "embeddings"),
	}, nil
}

// process embeds the lemmas of the documents that have no stored vector yet.
func (ep *embeddingProcessor) process(ctx context.Context, docs ...*core.Document) error {
	var lemmas []string
	for _, doc := range docs {
		lemmas = append(lemmas, vectorize.DocumentLemmas(doc, ep.language)...)
	}
	slices.Sort(lemmas)
	lemmas = slices.Compact(lemmas)
	if len(lemmas) == 0 {
		return nil
	}

	stored, err := ep.vectors.GetVectors(ctx, lemmas...)
	if err != nil {
		ep.logger.Error("error reading stored vectors", "err", err)
		return err
	}
	have := make(map[string]struct{}, len(stored))
	for _, record := range stored {
		have[record.Lemma] = struct{}{}
	}
	lemmas = slices.DeleteFunc(lemmas, func(lemma string) bool {
		_, ok := have[lemma]
		return ok
	})

	ep.logger.Debug("embedding lemmas", "documents", len(docs), "lemmas", len(lemmas), "stored", len(stored))
	for batch := range slices.Chunk(lemmas, embeddingBatchSize) {
		if err := ep.batches.Process(ctx, batch); err != nil {
			return fmt.Errorf("failed to embed lemmas: %w", err)
		}
	}
	return nil
}
