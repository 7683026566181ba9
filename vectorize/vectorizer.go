// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vectorize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/poiesic/topicmatch/storage"
)

// Config holds configuration for a vectorization run.
type Config struct {
	// BatchSize is the number of lemmas sent to the embedder per call
	BatchSize int

	// ReportInterval is how often to report progress (number of lemmas)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Workers is the number of batches embedded concurrently
	Workers int

	// Force re-embeds lemmas that already have a stored vector
	Force bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		Workers:        4,
	}
}

// Result summarizes a vectorization run.
type Result struct {
	Lemmas   int // Distinct lemmas found in the documents
	Embedded int // Lemmas embedded by this run
	Skipped  int // Lemmas that already had a vector
}

// Vectorizer embeds the lemmas of every stored document.
type Vectorizer struct {
	docs      storage.DocumentRepository
	vectors   storage.VectorRepository
	config    *Config
	language  *phraselet.Language
	progress  io.Writer
	processor *BatchProcessor
	logger    *slog.Logger
}

// NewVectorizer creates a vectorizer.
// progress: where to write progress output (typically os.Stderr)
func NewVectorizer(docs storage.DocumentRepository, vectors storage.VectorRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Vectorizer {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Vectorizer{
		docs:      docs,
		vectors:   vectors,
		config:    config,
		language:  phraselet.English(),
		progress:  progress,
		processor: NewBatchProcessor(vectors, embedder, config.MaxRetries, config.RetryDelay),
		logger:    slog.Default().With("component", "vectorizer"),
	}
}

// Run collects the lemmas of all stored documents and stores a vector for each
// lemma that lacks one, or for every lemma when Force is set.
func (v *Vectorizer) Run(ctx context.Context) (Result, error) {
	lemmas, err := CollectLemmas(ctx, v.docs, v.language)
	if err != nil {
		return Result{}, err
	}
	result := Result{Lemmas: len(lemmas)}

	pending := lemmas
	if !v.config.Force {
		pending, err = v.missing(ctx, lemmas)
		if err != nil {
			return result, err
		}
	}
	result.Skipped = len(lemmas) - len(pending)

	if len(pending) == 0 {
		fmt.Fprintf(v.progress, "No lemmas to vectorize (%d already stored)\n", result.Skipped)
		return result, nil
	}

	batchSize := max(v.config.BatchSize, 1)
	fmt.Fprintf(v.progress, "Vectorizing %d lemmas (batch size: %d, skipped: %d)\n",
		len(pending), batchSize, result.Skipped)

	tracker := NewProgressTracker(v.progress, len(pending), v.config.ReportInterval)
	tracker.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(v.config.Workers, 1))
	for batch := range slices.Chunk(pending, batchSize) {
		g.Go(func() error {
			if err := v.processor.Process(gctx, batch); err != nil {
				return err
			}
			tracker.Add(len(batch))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		result.Embedded = tracker.Done()
		v.logger.Error("vectorization failed", "embedded", result.Embedded, "err", err)
		return result, err
	}
	tracker.Finish()
	result.Embedded = len(pending)

	elapsed := tracker.Elapsed()
	fmt.Fprintf(v.progress, "Vectorization complete. Embedded %d lemmas in %v (%.1f lemmas/sec)\n",
		result.Embedded, elapsed.Round(time.Millisecond), float64(result.Embedded)/max(elapsed.Seconds(), 1e-9))
	v.logger.Info("vectorization complete", "lemmas", result.Lemmas, "embedded", result.Embedded, "skipped", result.Skipped)
	return result, nil
}

// missing returns the lemmas without a stored vector, preserving order.
func (v *Vectorizer) missing(ctx context.Context, lemmas []string) ([]string, error) {
	stored, err := v.vectors.GetVectors(ctx, lemmas...)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored vectors: %w", err)
	}
	have := make(map[string]struct{}, len(stored))
	for _, record := range stored {
		have[record.Lemma] = struct{}{}
	}
	return slices.DeleteFunc(slices.Clone(lemmas), func(lemma string) bool {
		_, ok := have[lemma]
		return ok
	}), nil
}
