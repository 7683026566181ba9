package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedderDeterministic(t *testing.T) {
	m := NewMockEmbedder()
	a, err := m.EmbedText(context.Background(), "car")
	require.NoError(t, err)
	b, err := m.EmbedText(context.Background(), "car")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 384)
	assert.Equal(t, 2, m.CallCount())

	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-4)
}

func TestMockEmbedderFixedVectors(t *testing.T) {
	m := NewMockEmbedder().WithVectors(map[string][]float32{"car": {1, 0}})
	vectors, err := m.EmbedTexts(context.Background(), []string{"car", "bus"})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vectors[0])
	assert.Len(t, vectors[1], 384)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	require.NotNil(t, p.Embedder())
	require.NoError(t, p.Close())
	assert.True(t, p.(*MockProvider).Closed())
}
