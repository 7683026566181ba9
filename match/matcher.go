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


package match

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/embedding"
	"github.com/poiesic/topicmatch/ontology"
	"github.com/poiesic/topicmatch/phraselet"
)

// Matcher finds phraselets in documents, one document per pool worker.
type Matcher struct {
	language *phraselet.Language
	ontology ontology.Ontology
	oracle   embedding.Oracle
	pool     *ants.Pool
	ownsPool bool
	released atomic.Bool
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLanguage sets the language profile. Default is phraselet.English().
func WithLanguage(language *phraselet.Language) Option {
	return func(m *Matcher) error {
		m.language = language
		return nil
	}
}

// WithOntology sets the ontology for hypernym and synonym matches.
func WithOntology(o ontology.Ontology) Option {
	return func(m *Matcher) error {
		m.ontology = o
		return nil
	}
}

// WithOracle sets the embedding oracle. Without one no embedding matches occur.
func WithOracle(oracle embedding.Oracle) Option {
	return func(m *Matcher) error {
		m.oracle = oracle
		return nil
	}
}

// WithPool shares a worker pool. The caller keeps ownership.
func WithPool(pool *ants.Pool) Option {
	return func(m *Matcher) error {
		if m.ownsPool && m.pool != nil {
			m.pool.Release()
		}
		m.pool = pool
		m.ownsPool = false
		return nil
	}
}

// WithPoolSize sets the size of the matcher's own worker pool.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if m.ownsPool && m.pool != nil {
			m.pool.Release()
		}
		m.pool = pool
		m.ownsPool = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a Matcher.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		language: phraselet.English(),
		ontology: ontology.Empty{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			m.Release()
			return nil, err
		}
	}
	if m.pool == nil {
		size := runtime.NumCPU()
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return nil, err
		}
		m.pool, m.ownsPool = pool, true
	}
	if m.ontology == nil {
		m.ontology = ontology.Empty{}
	}
	m.logger = m.logger.With("component", "matcher")
	return m, nil
}

// Release frees the matcher's own worker pool.
func (m *Matcher) Release() {
	if m.released.Swap(true) {
		return
	}
	if m.ownsPool && m.pool != nil {
		m.pool.Release()
	}
}

// Match finds every phraselet of the set in the documents. Matches come back
// grouped by document in the order given, then by anchor position, then by
// phraselet order. No documents or no phraselets yield no matches. A nil cfg
// means config.Default().
func (m *Matcher) Match(ctx context.Context, set *phraselet.Set, docs []*core.Document, cfg *config.Config) ([]StructuralMatch, error) {
	if m.released.Load() {
		return nil, ErrMatcherReleased
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if set == nil || set.Len() == 0 || len(docs) == 0 {
		return nil, nil
	}

	results := make([][]StructuralMatch, len(docs))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for i, doc := range docs {
		wg.Add(1)
		err := m.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			found, err := m.matchDocument(ctx, set, doc, cfg)
			if err != nil {
				fail(err)
				return
			}
			results[i] = found
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		m.logger.Error("structural matching failed", "err", firstErr)
		return nil, firstErr
	}

	var matches []StructuralMatch
	for _, found := range results {
		matches = append(matches, found...)
	}
	m.logger.Debug("structural matching complete",
		"documents", len(docs), "phraselets", set.Len(), "matches", len(matches))
	return matches, nil
}

func (m *Matcher) matchDocument(ctx context.Context, set *phraselet.Set, doc *core.Document, cfg *config.Config) ([]StructuralMatch, error) {
	d := &documentMatcher{
		doc:      doc,
		set:      set,
		cfg:      cfg,
		language: m.language,
		words: &wordMatcher{
			doc:       doc,
			language:  m.language,
			ontology:  m.ontology,
			oracle:    m.oracle,
			threshold: cfg.OverallSimilarityThreshold,
			coref:     cfg.PerformCoreferenceResolution,
		},
	}
	return d.match(ctx)
}
