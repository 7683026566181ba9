package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/parser"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/poiesic/topicmatch/storage"
)

// Text is a raw document awaiting parsing.
type Text struct {
	Label string
	Text  string
}

// Pipeline orchestrates the registration of documents.
// It parses texts concurrently, persists parsed documents and embeds their
// lemmas in the background.
type Pipeline struct {
	parser        parser.Parser
	docs          storage.DocumentRepository
	vectors       storage.VectorRepository
	embedder      ai.Embedder
	language      *phraselet.Language
	poolSize      int
	embeddingPool *ants.Pool
	embeddingProc processor
	pending       sync.WaitGroup
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize bounds concurrent parsing and background embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithDocumentRepository persists every ingested document.
func WithDocumentRepository(docs storage.DocumentRepository) Option {
	return func(p *Pipeline) error {
		p.docs = docs
		return nil
	}
}

// WithEmbedder stores vectors for the lemmas of ingested documents.
func WithEmbedder(vectors storage.VectorRepository, embedder ai.Embedder) Option {
	return func(p *Pipeline) error {
		if vectors == nil {
			return ErrVectorRepositoryRequired
		}
		if embedder == nil {
			return ErrEmbedderRequired
		}
		p.vectors, p.embedder = vectors, embedder
		return nil
	}
}

// WithLanguage sets the language profile used to select lemmas.
// Default is phraselet.English().
func WithLanguage(language *phraselet.Language) Option {
	return func(p *Pipeline) error {
		if language != nil {
			p.language = language
		}
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(p parser.Parser, opts ...Option) (*Pipeline, error) {
	if p == nil {
		return nil, ErrParserRequired
	}

	pipeline := &Pipeline{
		parser:   p,
		language: phraselet.English(),
		poolSize: max(runtime.NumCPU()/2, 1),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(pipeline); err != nil {
			return nil, err
		}
	}

	if pipeline.embedder != nil {
		proc, err := newEmbeddingProcessor(pipeline.vectors, pipeline.embedder, pipeline.language, pipeline.logger)
		if err != nil {
			return nil, err
		}
		pool, err := ants.NewPool(pipeline.poolSize)
		if err != nil {
			return nil, err
		}
		pipeline.embeddingProc, pipeline.embeddingPool = proc, pool
	}

	return pipeline, nil
}

// Parse annotates the texts concurrently. Documents come back in the order of
// the texts; the first parser error cancels the rest and is returned.
func (p *Pipeline) Parse(ctx context.Context, texts ...Text) ([]*core.Document, error) {
	docs := make([]*core.Document, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.poolSize)
	for i, text := range texts {
		g.Go(func() error {
			doc, err := p.parser.Parse(gctx, text.Text, text.Label)
			if err != nil {
				return fmt.Errorf("failed to parse %q: %w", text.Label, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Error("error parsing documents", "documents", len(texts), "err", err)
		return nil, err
	}
	p.logger.Debug("parsed documents", "documents", len(docs))
	return docs, nil
}

// Ingest persists the documents when a document repository is configured and
// submits their lemmas for background embedding when an embedder is.
func (p *Pipeline) Ingest(ctx context.Context, docs ...*core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	if p.docs != nil {
		if err := p.docs.PutDocuments(ctx, docs...); err != nil {
			return err
		}
	}

	if p.embeddingProc == nil {
		return nil
	}
	p.pending.Add(1)
	err := p.embeddingPool.Submit(func() {
		defer p.pending.Done()
		if err := p.embeddingProc.process(context.Background(), docs...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		p.logger.Error("error submitting embeddings", "err", err)
	}
	return nil
}

// Wait blocks until background embedding has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for background work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.Wait()
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
