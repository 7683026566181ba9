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


// Package topicmatch finds the passages of registered documents that best
// match a query, tolerating paraphrase, coreference, hypernymy and
// embedding-based word substitution.
//
// A Manager holds the registered documents and standing search phrases:
//
//	m, err := topicmatch.NewManager(parser)
//	...
//	err = m.RegisterDocument(ctx, text, "doc-1")
//	results, err := m.TopicMatch(ctx, "A plant grows", config.WithNumberOfResults(5))
package topicmatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/embedding"
	"github.com/poiesic/topicmatch/ingestion"
	"github.com/poiesic/topicmatch/match"
	"github.com/poiesic/topicmatch/ontology"
	"github.com/poiesic/topicmatch/parser"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/poiesic/topicmatch/search"
	"github.com/poiesic/topicmatch/storage"
)

// Text is a raw document awaiting registration.
type Text = ingestion.Text

// PhraseMatches holds the topic matches of one registered search phrase.
type PhraseMatches struct {
	Label   string
	Matches []core.TopicMatch
}

type searchPhrase struct {
	label string
	doc   *core.Document
}

// Manager holds the registered documents and search phrases. It is safe for
// concurrent use: registration and removal are serialized, matching runs on a
// snapshot of the registered documents.
type Manager struct {
	mu        sync.RWMutex
	documents map[string]*core.Document
	order     []string
	phrases   []searchPhrase
	closed    bool

	config   *config.Config
	docs     storage.DocumentRepository
	pool     *ants.Pool
	matcher  *match.Matcher
	topics   *search.TopicMatcher
	pipeline *ingestion.Pipeline
	provider ai.AIProvider
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	poolSize int
	config   *config.Config
	ontology ontology.Ontology
	oracle   embedding.Oracle
	docs     storage.DocumentRepository
	vectors  storage.VectorRepository
	embedder ai.Embedder
	provider ai.AIProvider
	logger   *slog.Logger
}

// WithPoolSize sets the number of workers shared by matching and registration.
// Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(o *managerOptions) { o.poolSize = size }
}

// WithConfig sets the options every request starts from. Default is config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(o *managerOptions) { o.config = cfg }
}

// WithOntology enables hypernym and synonym matching.
func WithOntology(o ontology.Ontology) Option {
	return func(opts *managerOptions) { opts.ontology = o }
}

// WithOracle enables embedding-based matching.
func WithOracle(oracle embedding.Oracle) Option {
	return func(o *managerOptions) { o.oracle = oracle }
}

// WithDocumentRepository persists registered documents. The repository stays
// owned by the caller.
func WithDocumentRepository(docs storage.DocumentRepository) Option {
	return func(o *managerOptions) { o.docs = docs }
}

// WithEmbedder stores vectors for the lemmas of registered documents in the
// background.
func WithEmbedder(vectors storage.VectorRepository, embedder ai.Embedder) Option {
	return func(o *managerOptions) { o.vectors, o.embedder = vectors, embedder }
}

// WithProvider embeds lemmas in the background with the provider's embedder.
// The manager owns the provider and closes it on Close.
func WithProvider(vectors storage.VectorRepository, provider ai.AIProvider) Option {
	return func(o *managerOptions) {
		o.vectors, o.provider = vectors, provider
		if provider != nil {
			o.embedder = provider.Embedder()
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *managerOptions) { o.logger = logger }
}

// NewManager creates a Manager over the given parser.
func NewManager(p parser.Parser, opts ...Option) (*Manager, error) {
	options := &managerOptions{
		poolSize: runtime.NumCPU(),
		config:   config.Default(),
		ontology: ontology.Empty{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.config == nil {
		options.config = config.Default()
	}
	if err := options.config.Validate(); err != nil {
		return nil, err
	}
	if options.ontology == nil {
		options.ontology = ontology.Empty{}
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "manager")

	pipelineOpts := []ingestion.Option{
		ingestion.WithPoolSize(options.poolSize),
		ingestion.WithLogger(options.logger),
	}
	if options.docs != nil {
		pipelineOpts = append(pipelineOpts, ingestion.WithDocumentRepository(options.docs))
	}
	if options.vectors != nil || options.embedder != nil {
		pipelineOpts = append(pipelineOpts, ingestion.WithEmbedder(options.vectors, options.embedder))
	}
	pipeline, err := ingestion.NewPipeline(p, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(max(options.poolSize, 1))
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	matcher, err := match.NewMatcher(
		match.WithPool(pool),
		match.WithOntology(options.ontology),
		match.WithOracle(options.oracle),
		match.WithLogger(options.logger),
	)
	if err != nil {
		pool.Release()
		pipeline.Release()
		return nil, err
	}

	topics, err := search.NewTopicMatcher(p, matcher,
		search.WithBuilder(phraselet.NewBuilder(
			phraselet.WithOntology(options.ontology),
			phraselet.WithLogger(options.logger),
		)),
		search.WithLogger(options.logger),
	)
	if err != nil {
		matcher.Release()
		pool.Release()
		pipeline.Release()
		return nil, err
	}

	return &Manager{
		documents: make(map[string]*core.Document),
		config:    options.config,
		docs:      options.docs,
		pool:      pool,
		matcher:   matcher,
		topics:    topics,
		pipeline:  pipeline,
		provider:  options.provider,
		logger:    logger,
	}, nil
}

// Close releases the worker pools after background embedding has finished,
// then closes the provider. Repositories and oracles passed as options are
// left open.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.pipeline.Release()
	m.matcher.Release()
	m.pool.Release()
	if m.provider != nil {
		if err := m.provider.Close(); err != nil {
			m.logger.Error("error closing AI provider", "err", err)
			return fmt.Errorf("failed to close AI provider: %w", err)
		}
	}
	return nil
}

// RegisterDocument parses text and registers it under label.
func (m *Manager) RegisterDocument(ctx context.Context, text, label string) error {
	return m.RegisterDocuments(ctx, Text{Label: label, Text: text})
}

// RegisterDocuments parses the texts concurrently and registers them in the
// order given. Either every text is registered or none is.
func (m *Manager) RegisterDocuments(ctx context.Context, texts ...Text) error {
	labels := make([]string, len(texts))
	for i, text := range texts {
		labels[i] = text.Label
	}
	m.mu.RLock()
	err := m.checkLabels(labels)
	m.mu.RUnlock()
	if err != nil {
		return err
	}

	docs, err := m.pipeline.Parse(ctx, texts...)
	if err != nil {
		return err
	}
	return m.register(ctx, docs)
}

// RegisterParsedDocument registers a document parsed elsewhere. Its annotations
// are validated and its derived indexes rebuilt.
func (m *Manager) RegisterParsedDocument(ctx context.Context, doc *core.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", core.ErrInvalidDocument)
	}
	rebuilt, err := core.NewDocument(doc.Label, doc.Text, doc.Tokens, doc.Sentences, doc.Spans)
	if err != nil {
		return err
	}
	return m.register(ctx, []*core.Document{rebuilt})
}

func (m *Manager) register(ctx context.Context, docs []*core.Document) error {
	labels := make([]string, len(docs))
	for i, doc := range docs {
		labels[i] = doc.Label
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLabels(labels); err != nil {
		return err
	}
	if err := m.pipeline.Ingest(ctx, docs...); err != nil {
		m.logger.Error("error storing documents", "documents", len(docs), "err", err)
		return err
	}
	for _, doc := range docs {
		m.add(doc)
	}
	m.logger.Debug("registered documents", "documents", len(docs), "total", len(m.order))
	return nil
}

// checkLabels must be called with the lock held.
func (m *Manager) checkLabels(labels []string) error {
	if m.closed {
		return ErrClosed
	}
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if _, ok := m.documents[label]; ok {
			return fmt.Errorf("%w: %q", core.ErrDuplicateDocument, label)
		}
		if _, ok := seen[label]; ok {
			return fmt.Errorf("%w: %q", core.ErrDuplicateDocument, label)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// add must be called with the write lock held.
func (m *Manager) add(doc *core.Document) {
	m.documents[doc.Label] = doc
	m.order = append(m.order, doc.Label)
}

// LoadDocuments registers every stored document whose label is not registered
// yet and returns how many were added.
func (m *Manager) LoadDocuments(ctx context.Context) (int, error) {
	if m.docs == nil {
		return 0, ErrNoDocumentRepository
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	loaded := 0
	err := m.docs.ForEachDocument(ctx, func(doc *core.Document) error {
		if _, ok := m.documents[doc.Label]; ok {
			return nil
		}
		m.add(doc)
		loaded++
		return nil
	})
	if err != nil {
		return loaded, err
	}
	m.logger.Info("loaded documents", "documents", loaded)
	return loaded, nil
}

// RemoveDocument deregisters a document and deletes it from storage.
func (m *Manager) RemoveDocument(ctx context.Context, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.documents[label]; !ok {
		return fmt.Errorf("%w: %q", ErrDocumentNotFound, label)
	}
	if m.docs != nil {
		if err := m.docs.DeleteDocuments(ctx, label); err != nil {
			return err
		}
	}
	delete(m.documents, label)
	m.order = slices.DeleteFunc(m.order, func(l string) bool { return l == label })
	return nil
}

// RemoveAllDocuments deregisters every document and clears storage.
func (m *Manager) RemoveAllDocuments(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.docs != nil {
		if err := m.docs.DeleteAllDocuments(ctx); err != nil {
			return err
		}
	}
	clear(m.documents)
	m.order = nil
	return nil
}

// DocumentLabels returns the registered labels in registration order.
func (m *Manager) DocumentLabels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Document returns a registered document.
func (m *Manager) Document(label string) (*core.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[label]
	return doc, ok
}

// RegisterSearchPhrase parses text and keeps it as a standing query under
// label. Several phrases may share a label.
func (m *Manager) RegisterSearchPhrase(ctx context.Context, text, label string) error {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	docs, err := m.pipeline.Parse(ctx, Text{Label: label, Text: text})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.phrases = append(m.phrases, searchPhrase{label: label, doc: docs[0]})
	return nil
}

// RemoveAllSearchPhrases forgets every search phrase.
func (m *Manager) RemoveAllSearchPhrases() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phrases = nil
}

// SearchPhraseLabels returns the labels of the search phrases in registration order.
func (m *Manager) SearchPhraseLabels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	labels := make([]string, len(m.phrases))
	for i, phrase := range m.phrases {
		labels[i] = phrase.label
	}
	return labels
}

// MatchSearchPhrases runs every search phrase as a topic query against the
// registered documents. Phrases without results are left out.
func (m *Manager) MatchSearchPhrases(ctx context.Context, opts ...config.Option) ([]PhraseMatches, error) {
	docs, phrases, cfg, err := m.snapshot(opts)
	if err != nil {
		return nil, err
	}

	var results []PhraseMatches
	for _, phrase := range phrases {
		matches, err := m.topics.MatchParsed(ctx, phrase.doc, docs, cfg)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			results = append(results, PhraseMatches{Label: phrase.label, Matches: matches})
		}
	}
	return results, nil
}

// TopicMatch finds the passages of the registered documents that best match
// the query. Options adjust the manager's configuration for this call only.
func (m *Manager) TopicMatch(ctx context.Context, query string, opts ...config.Option) ([]core.TopicMatch, error) {
	docs, _, cfg, err := m.snapshot(opts)
	if err != nil {
		return nil, err
	}
	return m.topics.Match(ctx, query, docs, cfg)
}

// TopicMatchWithMonitor is TopicMatch with stage callbacks.
func (m *Manager) TopicMatchWithMonitor(ctx context.Context, query string, monitor search.Monitor, opts ...config.Option) ([]core.TopicMatch, error) {
	docs, _, cfg, err := m.snapshot(opts)
	if err != nil {
		return nil, err
	}
	return m.topics.MatchWithMonitor(ctx, query, docs, cfg, monitor)
}

// TopicMatchAsDictionaries is TopicMatch with results rendered with character offsets.
func (m *Manager) TopicMatchAsDictionaries(ctx context.Context, query string, opts ...config.Option) ([]core.TopicMatchDictionary, error) {
	docs, _, cfg, err := m.snapshot(opts)
	if err != nil {
		return nil, err
	}
	return m.topics.Dictionaries(ctx, query, docs, cfg)
}

func (m *Manager) snapshot(opts []config.Option) ([]*core.Document, []searchPhrase, *config.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, nil, nil, ErrClosed
	}
	docs := make([]*core.Document, len(m.order))
	for i, label := range m.order {
		docs[i] = m.documents[label]
	}
	return docs, slices.Clone(m.phrases), m.config.With(opts...), nil
}
