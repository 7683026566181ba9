package ingestion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/internal/fixtures"
	"github.com/poiesic/topicmatch/parser"
	"github.com/poiesic/topicmatch/storage"
	"github.com/poiesic/topicmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEmbedder implements ai.Embedder for testing
type testEmbedder struct {
	calls       atomic.Int32
	shouldError bool
}

func (m *testEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (m *testEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls.Add(1)
	if m.shouldError {
		return nil, errors.New("embedder error")
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = []float32{float32(len(text)), 1}
	}
	return result, nil
}

func setupTestRepositories(t *testing.T) (storage.DocumentRepository, storage.VectorRepository) {
	backend, err := badger.OpenBackend(t.TempDir(), false)
	require.NoError(t, err)

	docRepo, vectorRepo, backend, err := badger.NewRepositories(backend)
	require.NoError(t, err)

	t.Cleanup(func() {
		vectorRepo.Close()
		docRepo.Close()
		backend.Close()
	})
	return docRepo, vectorRepo
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires parser", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.ErrorIs(t, err, ErrParserRequired)
	})

	t.Run("embedder needs repository", func(t *testing.T) {
		_, err := NewPipeline(fixtures.Parser(), WithEmbedder(nil, &testEmbedder{}))
		assert.ErrorIs(t, err, ErrVectorRepositoryRequired)
	})

	t.Run("repository needs embedder", func(t *testing.T) {
		_, vectors := setupTestRepositories(t)
		_, err := NewPipeline(fixtures.Parser(), WithEmbedder(vectors, nil))
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("pool size floor", func(t *testing.T) {
		p, err := NewPipeline(fixtures.Parser(), WithPoolSize(0))
		require.NoError(t, err)
		defer p.Release()
		assert.Equal(t, 1, p.poolSize)
	})
}

func TestParseKeepsOrder(t *testing.T) {
	p, err := NewPipeline(fixtures.Parser(), WithPoolSize(4))
	require.NoError(t, err)
	defer p.Release()

	texts := []Text{
		{Label: "plant", Text: "A plant grows"},
		{Label: "donkey", Text: "The donkey has a roof"},
		{Label: "man", Text: "A man walks"},
		{Label: "dog", Text: "The dog chased the cat"},
	}
	docs, err := p.Parse(context.Background(), texts...)
	require.NoError(t, err)
	require.Len(t, docs, len(texts))
	for i, text := range texts {
		assert.Equal(t, text.Label, docs[i].Label)
		assert.Equal(t, text.Text, docs[i].Text)
	}
}

func TestParseError(t *testing.T) {
	p, err := NewPipeline(fixtures.Parser())
	require.NoError(t, err)
	defer p.Release()

	docs, err := p.Parse(context.Background(),
		Text{Label: "plant", Text: "A plant grows"},
		Text{Label: "unknown", Text: "No fixture has this text"},
	)
	assert.ErrorIs(t, err, parser.ErrMalformedInput)
	assert.ErrorContains(t, err, `"unknown"`)
	assert.Nil(t, docs)
}

func TestIngestPersistsDocuments(t *testing.T) {
	docs, _ := setupTestRepositories(t)
	ctx := context.Background()
	p, err := NewPipeline(fixtures.Parser(), WithDocumentRepository(docs))
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Ingest(ctx,
		fixtures.Document("A plant grows", "plant"),
		fixtures.Document("A man walks", "man"),
	))

	labels, err := docs.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plant", "man"}, labels)

	require.NoError(t, p.Ingest(ctx))
}

func TestIngestWithoutRepository(t *testing.T) {
	p, err := NewPipeline(fixtures.Parser())
	require.NoError(t, err)
	defer p.Release()

	assert.NoError(t, p.Ingest(context.Background(), fixtures.Document("A plant grows", "plant")))
}

func TestIngestEmbedsLemmas(t *testing.T) {
	docs, vectors := setupTestRepositories(t)
	ctx := context.Background()
	embedder := &testEmbedder{}
	p, err := NewPipeline(fixtures.Parser(), WithDocumentRepository(docs), WithEmbedder(vectors, embedder))
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Ingest(ctx, fixtures.Document("The donkey has a roof", "donkey")))
	p.Wait()

	count, err := vectors.CountVectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "donkey and roof")

	roof, err := vectors.GetVector(ctx, "roof")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.9701425, 0.2425356}, roof.Vector, 1e-6)

	// only the new lemma reaches the embedder
	require.NoError(t, p.Ingest(ctx, fixtures.Document("The donkey paints a roof", "painter")))
	p.Wait()
	assert.Equal(t, int32(2), embedder.calls.Load())

	count, err = vectors.CountVectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, p.Ingest(ctx, fixtures.Document("The donkey paints a roof", "again")))
	p.Wait()
	assert.Equal(t, int32(2), embedder.calls.Load(), "no call when every lemma is stored")
}

func TestIngestEmbeddingErrorsAreLogged(t *testing.T) {
	docs, vectors := setupTestRepositories(t)
	ctx := context.Background()
	embedder := &testEmbedder{shouldError: true}
	p, err := NewPipeline(fixtures.Parser(), WithDocumentRepository(docs), WithEmbedder(vectors, embedder))
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Ingest(ctx, fixtures.Document("A plant grows", "plant")))
	p.Wait()

	found, err := docs.HasDocument(ctx, "plant", core.Fingerprint(fixtures.Document("A plant grows", "plant")))
	require.NoError(t, err)
	assert.True(t, found, "the document is stored even when embedding fails")

	count, err := vectors.CountVectors(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
