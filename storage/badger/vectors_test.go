package badger

import (
	"context"
	"testing"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVectorRepository(t *testing.T) storage.VectorRepository {
	t.Helper()
	docRepo, vectorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectorRepo.Close()
		docRepo.Close()
		backend.Close()
	})
	return vectorRepo
}

func TestPutAndGetVectors(t *testing.T) {
	repo := newVectorRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PutVectors(ctx,
		&core.LemmaVector{Lemma: "dog", Vector: []float32{1, 0}},
		&core.LemmaVector{Lemma: "cat", Vector: []float32{0, 1}},
	))

	v, err := repo.GetVector(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, v.Vector)

	_, err = repo.GetVector(ctx, "horse")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	vectors, err := repo.GetVectors(ctx, "cat", "horse", "dog")
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, "cat", vectors[0].Lemma)
	assert.Equal(t, "dog", vectors[1].Lemma)

	count, err := repo.CountVectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.PutVectors(ctx, &core.LemmaVector{Lemma: "dog", Vector: []float32{0.6, 0.8}}))
	v, err = repo.GetVector(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, v.Vector)

	require.NoError(t, repo.DeleteAllVectors(ctx))
	count, err = repo.CountVectors(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindSimilar(t *testing.T) {
	repo := newVectorRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PutVectors(ctx,
		&core.LemmaVector{Lemma: "king", Vector: []float32{1, 0, 0}},
		&core.LemmaVector{Lemma: "queen", Vector: []float32{0.8, 0.6, 0}},
		&core.LemmaVector{Lemma: "cabbage", Vector: []float32{0, 0, 1}},
		&core.LemmaVector{Lemma: "empty"},
	))

	t.Run("threshold filtering", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "king", results[0].Lemma)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.Equal(t, "queen", results[1].Lemma)
		assert.InDelta(t, 0.8, results[1].Score, 1e-6)
	})

	t.Run("limit results", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, -1, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "king", results[0].Lemma)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}
