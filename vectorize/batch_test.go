package vectorize

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/poiesic/topicmatch/ai/mock"
	"github.com/poiesic/topicmatch/storage"
	"github.com/poiesic/topicmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepositories(t *testing.T) (storage.DocumentRepository, storage.VectorRepository) {
	t.Helper()
	docs, vectors, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectors.Close()
		docs.Close()
		backend.Close()
	})
	return docs, vectors
}

func TestBatchProcessor_Process(t *testing.T) {
	_, vectors := newRepositories(t)
	ctx := context.Background()
	embedder := mock.NewMockEmbedder().WithVectors(map[string][]float32{
		"car":        {3, 4},
		"automobile": {0, 2},
	})
	processor := NewBatchProcessor(vectors, embedder, 3, time.Millisecond)

	require.NoError(t, processor.Process(ctx, []string{"car", "automobile"}))
	assert.Equal(t, 1, embedder.CallCount(), "one embedding call per batch")

	car, err := vectors.GetVector(ctx, "car")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, car.Vector, 1e-6)

	automobile, err := vectors.GetVector(ctx, "automobile")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0, 1}, automobile.Vector, 1e-6)
}

func TestBatchProcessor_NormalizesVectors(t *testing.T) {
	_, vectors := newRepositories(t)
	ctx := context.Background()
	processor := NewBatchProcessor(vectors, mock.NewMockEmbedder(), 1, time.Millisecond)

	require.NoError(t, processor.Process(ctx, []string{"plant"}))

	record, err := vectors.GetVector(ctx, "plant")
	require.NoError(t, err)
	var sum float64
	for _, x := range record.Vector {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	_, vectors := newRepositories(t)
	embedder := mock.NewMockEmbedder()
	processor := NewBatchProcessor(vectors, embedder, 3, time.Millisecond)

	require.NoError(t, processor.Process(context.Background(), nil))
	assert.Zero(t, embedder.CallCount())
}

func TestBatchProcessor_RetriesEmbedder(t *testing.T) {
	_, vectors := newRepositories(t)
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	failures := 2
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("service unavailable")
		}
		return [][]float32{{1, 0}}, nil
	}
	processor := NewBatchProcessor(vectors, embedder, 3, time.Millisecond)

	require.NoError(t, processor.Process(ctx, []string{"grow"}))
	assert.Equal(t, 3, embedder.CallCount())

	count, err := vectors.CountVectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBatchProcessor_GivesUp(t *testing.T) {
	_, vectors := newRepositories(t)
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	failure := errors.New("service unavailable")
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, failure
	}
	processor := NewBatchProcessor(vectors, embedder, 2, time.Millisecond)

	err := processor.Process(ctx, []string{"grow"})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 2, embedder.CallCount())

	count, err := vectors.CountVectors(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing is stored for a failed batch")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	_, vectors := newRepositories(t)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}
	processor := NewBatchProcessor(vectors, embedder, 1, time.Millisecond)

	err := processor.Process(context.Background(), []string{"grow", "plant"})
	assert.ErrorIs(t, err, ErrEmbeddingCount)
}
