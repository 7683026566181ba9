package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/internal/fixtures"
	"github.com/poiesic/topicmatch/parser/conll"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phraselets(t *testing.T, query string) *phraselet.Set {
	t.Helper()
	set, err := phraselet.NewBuilder().Build(fixtures.Document(query, "query"), phraselet.TopicMatchingOptions())
	require.NoError(t, err)
	return set
}

func matchDocs(t *testing.T, query string, docs []*core.Document, cfg *config.Config, opts ...Option) []StructuralMatch {
	t.Helper()
	opts = append([]Option{WithOracle(fixtures.Oracle()), WithPoolSize(2)}, opts...)
	m, err := NewMatcher(opts...)
	require.NoError(t, err)
	defer m.Release()

	matches, err := m.Match(context.Background(), phraselets(t, query), docs, cfg)
	require.NoError(t, err)
	return matches
}

func matchText(t *testing.T, query, text string, cfg *config.Config, opts ...Option) []StructuralMatch {
	t.Helper()
	return matchDocs(t, query, []*core.Document{fixtures.Document(text, "doc")}, cfg, opts...)
}

func labels(matches []StructuralMatch) []string {
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = fmt.Sprintf("%s@%d", m.PhraseletLabel, m.Index)
	}
	return result
}

func embeddings() *config.Config {
	return config.New(config.WithOverallSimilarityThreshold(0.65))
}

func TestExactMatches(t *testing.T) {
	matches := matchText(t, "A plant grows", "A plant grows", config.Default())
	assert.Equal(t, []string{
		"word: plant@1",
		"word: grow@2",
		"predicate-actor: grow-plant@2",
	}, labels(matches))

	rel := matches[2]
	assert.Equal(t, Exact, rel.Kind)
	assert.Equal(t, 1.0, rel.Similarity)
	assert.Equal(t, []int{2, 1}, rel.Tokens())
	assert.Equal(t, "nsubj", rel.DependencyLabel)
	assert.Equal(t, "doc", rel.DocumentLabel)
	assert.True(t, matches[0].SingleWord)
	assert.False(t, matches[0].AnyTag)
	assert.True(t, matches[1].AnyTag)
}

func TestCoreference(t *testing.T) {
	text := "I saw a plant. It was growing"

	matches := matchText(t, "A plant grows", text, config.Default())
	assert.Equal(t, []string{
		"word: plant@3",
		"word: plant@5",
		"word: grow@7",
		"predicate-actor: grow-plant@7",
	}, labels(matches))
	assert.Equal(t, 3, matches[1].Governor().Token)
	assert.Equal(t, 3, matches[3].Dependent().Token)

	matches = matchText(t, "A plant grows", text, config.New(config.WithPerformCoreferenceResolution(false)))
	assert.Equal(t, []string{"word: plant@3", "word: grow@7"}, labels(matches))
}

func TestEntityPlaceholders(t *testing.T) {
	matches := matchText(t, "My friend visited ENTITYGPE", "Peter visited Paris", config.Default())
	assert.Equal(t, []string{
		"word: visit@1",
		"predicate-patient: visit-ENTITYGPE@1",
		"word: ENTITYGPE@2",
	}, labels(matches))
	assert.Equal(t, Entity, matches[1].Kind)
	assert.Equal(t, Entity, matches[2].Kind)

	matches = matchText(t, "My friend visited ENTITYNOUN", "Peter visited a city", config.Default())
	assert.Equal(t, []string{
		"word: visit@1",
		"predicate-patient: visit-ENTITYNOUN@1",
	}, labels(matches))
	assert.Equal(t, 3, matches[1].Dependent().Token)
}

func TestOntologyMatches(t *testing.T) {
	matches := matchText(t, "I saw an animal", "Somebody saw a cat", config.Default(), WithOntology(fixtures.Animals()))
	assert.Equal(t, []string{
		"word: see@1",
		"predicate-patient: see-animal@1",
		"word: animal@3",
	}, labels(matches))
	assert.Equal(t, Ontology, matches[1].Kind)
	assert.Equal(t, 1.0, matches[1].Similarity)
	assert.Equal(t, []string{"animal", "cat"}, matches[2].Governor().Path)

	matches = matchText(t, "I saw an animal", "Somebody saw a cat", config.Default())
	assert.Equal(t, []string{"word: see@1"}, labels(matches))
}

func TestEmbeddingMatches(t *testing.T) {
	query, text := "I saw a king", "Somebody saw a queen"

	matches := matchText(t, query, text, config.Default())
	assert.Equal(t, []string{"word: see@1"}, labels(matches), "no embeddings at threshold 1")

	matches = matchText(t, query, text, embeddings())
	assert.Equal(t, []string{"word: see@1", "predicate-patient: see-king@1"}, labels(matches))
	assert.Equal(t, Embedding, matches[1].Kind)
	assert.InDelta(t, 0.85, matches[1].Similarity, 1e-9)
	assert.InDelta(t, fixtures.Similarity, matches[1].Dependent().Similarity, 1e-9)

	matches = matchText(t, query, text, embeddings().With(config.WithEmbeddingBasedMatchingOnRootWords(true)))
	assert.Equal(t, []string{
		"word: see@1",
		"predicate-patient: see-king@1",
		"word: king@3",
	}, labels(matches))
	assert.InDelta(t, fixtures.Similarity, matches[2].Similarity, 1e-9)
}

func TestEmbeddingRetry(t *testing.T) {
	query, text := "A car with an engine", "An automobile with an engine"

	matches := matchText(t, query, text, embeddings())
	assert.Equal(t, []string{
		"prepgovernor-noun: car-engine@1",
		"word: with@2",
		"prep-noun: with-engine@2",
		"word: engine@4",
	}, labels(matches))
	assert.Equal(t, ReverseEmbedding, matches[0].Kind)
	assert.InDelta(t, 0.85, matches[0].Similarity, 1e-9)
	assert.True(t, matches[2].ReverseOnly)

	without := []string{"word: with@2", "prep-noun: with-engine@2", "word: engine@4"}
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"no single-word anchors allowed", embeddings().With(config.WithMaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries(0))},
		{"zero cutoff", embeddings().With(config.WithEmbeddingBasedRetryPreexistingMatchCutoff(0))},
		{"no embeddings", config.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, without, labels(matchText(t, query, text, tt.cfg)))
		})
	}
}

func TestSuperfluousMatches(t *testing.T) {
	t.Run("coordinated dependent", func(t *testing.T) {
		matches := matchText(t, "Somebody buys a vehicle", "Somebody buys a vehicle and a car", embeddings())
		assert.Equal(t, []string{
			"word: buy@1",
			"predicate-patient: buy-vehicle@1",
			"word: vehicle@3",
		}, labels(matches))
		assert.Equal(t, 3, matches[1].Dependent().Token)
	})

	t.Run("farther coreferent governor", func(t *testing.T) {
		matches := matchText(t, "A big man", "I saw a big man. The man walked", config.Default())
		assert.Equal(t, []string{
			"word: big@3",
			"word: man@4",
			"governor-adjective: man-big@4",
			"word: man@7",
		}, labels(matches))
	})
}

func TestMultiwordSpans(t *testing.T) {
	query := "Richard Paul Hudson came"

	matches := matchText(t, query, "I saw Richard Paul Hudson. He came.", config.Default())
	assert.Equal(t, []string{
		"word: richard paul hudson@4",
		"word: richard paul hudson@6",
		"word: come@7",
		"predicate-actor: come-richard paul hudson@7",
	}, labels(matches))
	assert.Equal(t, 1.0, matches[1].Similarity)
	assert.Equal(t, SpanIdentity, matches[0].Governor().Span)
	assert.Equal(t, SpanIdentity, matches[1].Governor().Span)
	assert.Equal(t, 4, matches[3].Dependent().Token)

	matches = matchText(t, query, "I saw Richard Paul Hudson. Hudson came", config.Default())
	require.NotEmpty(t, matches)
	assert.Equal(t, "word: richard paul hudson@6", labels(matches)[1])
	assert.Equal(t, SpanIdentity, matches[1].Governor().Span, "the coreferring span beats the bare head")
	assert.Equal(t, 4, matches[1].Governor().Token)

	matches = matchText(t, query, "Hudson came", config.Default())
	require.Len(t, matches, 3)
	assert.Equal(t, SpanHead, matches[0].Governor().Span)
	assert.Equal(t, 1.0, matches[0].Similarity)

	matches = matchText(t, "Hudson came", "I saw Richard Paul Hudson", config.Default())
	require.Len(t, matches, 1)
	assert.Equal(t, NoSpan, matches[0].Governor().Span)
	assert.Equal(t, 4, matches[0].Index)

	matches = matchText(t, "Richard Paul came", "I saw Richard Paul Hudson", config.Default())
	require.Len(t, matches, 1)
	assert.Equal(t, "word: richard paul@3", labels(matches)[0])
	assert.Equal(t, SpanDependent, matches[0].Governor().Span)
	assert.Equal(t, spanDependentSimilarity, matches[0].Similarity)

	doc, err := conll.Parser{}.Parse(context.Background(),
		"1 Hudson Hudson PROPN NNP _ 2 compound _ SpanHead=2\n"+
			"2 Smith  Smith  PROPN NNP _ 3 nsubj    _ _\n"+
			"3 came   come   VERB  VBD _ 0 root     _ _\n", "doc")
	require.NoError(t, err)
	matches = matchDocs(t, query, []*core.Document{doc}, config.Default())
	require.NotEmpty(t, matches)
	assert.Equal(t, "word: richard paul hudson@0", labels(matches)[0])
	assert.Equal(t, SpanDependent, matches[0].Governor().Span)
}

func TestReverseOnlyNeverAnchorsAtGovernor(t *testing.T) {
	matches := matchText(t, "A car with an engine", "A car with an engine", config.Default())
	for _, m := range matches {
		if m.ReverseOnly {
			assert.Equal(t, "with", m.Governor().QueryLemma)
			assert.Equal(t, m.Index, m.Governor().Token)
		}
	}
	assert.Contains(t, labels(matches), "prep-noun: with-engine@2")
	assert.Contains(t, labels(matches), "prepgovernor-noun: car-engine@1")
}

func TestMatchOrdersDocuments(t *testing.T) {
	docs := []*core.Document{
		fixtures.Document("Dogs and cats.", "second"),
		fixtures.Document("A dog chased a cat.", "first"),
	}
	matches := matchDocs(t, "The dog chased the cat", docs, config.Default())
	require.NotEmpty(t, matches)
	assert.Equal(t, "second", matches[0].DocumentLabel)
	assert.Equal(t, "first", matches[len(matches)-1].DocumentLabel)
}

func TestMatchEdgeCases(t *testing.T) {
	ctx := context.Background()
	m, err := NewMatcher(WithPoolSize(1))
	require.NoError(t, err)

	doc := fixtures.Document("A plant grows", "doc")
	set := phraselets(t, "A plant grows")

	matches, err := m.Match(ctx, set, nil, config.Default())
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = m.Match(ctx, phraselet.NewSet(), []*core.Document{doc}, config.Default())
	require.NoError(t, err)
	assert.Empty(t, matches)

	withDefaults, err := m.Match(ctx, set, []*core.Document{doc}, nil)
	require.NoError(t, err)
	expected, err := m.Match(ctx, set, []*core.Document{doc}, config.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, withDefaults)
	assert.Equal(t, labels(expected), labels(withDefaults))

	_, err = m.Match(ctx, set, []*core.Document{doc}, config.New(config.WithOverallSimilarityThreshold(2)))
	assert.ErrorIs(t, err, config.ErrOutOfRange)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Match(cancelled, set, []*core.Document{doc}, config.Default())
	assert.ErrorIs(t, err, context.Canceled)

	m.Release()
	m.Release()
	_, err = m.Match(ctx, set, []*core.Document{doc}, config.Default())
	assert.ErrorIs(t, err, ErrMatcherReleased)
}

type failingOracle struct{ err error }

func (o failingOracle) Similarity(context.Context, string, string) (float64, error) {
	return 0, o.err
}

func TestOracleErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	m, err := NewMatcher(WithOracle(failingOracle{boom}))
	require.NoError(t, err)
	defer m.Release()

	_, err = m.Match(context.Background(), phraselets(t, "I saw a king"),
		[]*core.Document{fixtures.Document("Somebody saw a queen", "doc")}, embeddings())
	assert.ErrorIs(t, err, boom)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "exact", Exact.String())
	assert.Equal(t, "reverse-embedding", ReverseEmbedding.String())
	assert.Equal(t, "unknown", Kind(42).String())
	assert.Equal(t, Embedding, maxKind(Exact, Embedding, Ontology))
}
