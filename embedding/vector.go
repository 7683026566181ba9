package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/storage"
)

const (
	defaultCacheCounters = 100_000
	defaultCacheCost     = 1 << 24
)

// VectorOracle computes cosine similarity over lemma vectors. Vectors come from
// the vector repository first and from the embedder for lemmas not stored
// there. Vectors and pair similarities are cached.
type VectorOracle struct {
	vectors     storage.VectorRepository
	embedder    ai.Embedder
	store       bool
	vectorCache *ristretto.Cache[string, []float32]
	scoreCache  *ristretto.Cache[string, float64]
	logger      *slog.Logger
	closed      atomic.Bool
	cacheCost   int64
}

// VectorOption configures a VectorOracle.
type VectorOption func(*VectorOracle)

// WithRepository reads lemma vectors from a repository.
func WithRepository(repo storage.VectorRepository) VectorOption {
	return func(o *VectorOracle) { o.vectors = repo }
}

// WithEmbedder computes vectors for lemmas missing from the repository.
func WithEmbedder(embedder ai.Embedder) VectorOption {
	return func(o *VectorOracle) { o.embedder = embedder }
}

// WithStoreComputed writes vectors computed by the embedder back to the repository.
func WithStoreComputed(store bool) VectorOption {
	return func(o *VectorOracle) { o.store = store }
}

// WithCacheCost sets the cache budget in bytes.
func WithCacheCost(cost int64) VectorOption {
	return func(o *VectorOracle) { o.cacheCost = cost }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) VectorOption {
	return func(o *VectorOracle) { o.logger = logger }
}

// NewVectorOracle creates a VectorOracle. At least one of a repository or an
// embedder must be supplied.
func NewVectorOracle(opts ...VectorOption) (*VectorOracle, error) {
	o := &VectorOracle{
		logger:    slog.Default(),
		cacheCost: defaultCacheCost,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.vectors == nil && o.embedder == nil {
		return nil, errors.New("vector oracle needs a repository or an embedder")
	}
	o.logger = o.logger.With("component", "vector-oracle")

	var err error
	o.vectorCache, err = ristretto.NewCache(&ristretto.Config[string, []float32]{
		NumCounters: defaultCacheCounters,
		MaxCost:     o.cacheCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vector cache: %w", err)
	}
	o.scoreCache, err = ristretto.NewCache(&ristretto.Config[string, float64]{
		NumCounters: defaultCacheCounters,
		MaxCost:     o.cacheCost / 4,
		BufferItems: 64,
	})
	if err != nil {
		o.vectorCache.Close()
		return nil, fmt.Errorf("failed to create similarity cache: %w", err)
	}
	return o, nil
}

// Similarity implements Oracle.
func (o *VectorOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	if o.closed.Load() {
		return 0, ErrClosed
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1, nil
	}
	key := pairKey(a, b)
	if score, ok := o.scoreCache.Get(key); ok {
		return score, nil
	}

	va, err := o.vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := o.vector(ctx, b)
	if err != nil {
		return 0, err
	}
	score := clamp(cosine(va, vb))
	o.scoreCache.Set(key, score, 1)
	return score, nil
}

// vector returns the vector of a lemma, or nil when neither the repository nor
// the embedder knows it.
func (o *VectorOracle) vector(ctx context.Context, lemma string) ([]float32, error) {
	if v, ok := o.vectorCache.Get(lemma); ok {
		return v, nil
	}

	if o.vectors != nil {
		record, err := o.vectors.GetVector(ctx, lemma)
		switch {
		case err == nil:
			o.remember(lemma, record.Vector)
			return record.Vector, nil
		case !errors.Is(err, storage.ErrNotFound):
			return nil, err
		}
	}

	if o.embedder == nil {
		o.remember(lemma, nil)
		return nil, nil
	}
	v, err := o.embedder.EmbedText(ctx, lemma)
	if err != nil {
		o.logger.Error("failed to embed lemma", "lemma", lemma, "err", err)
		return nil, err
	}
	v = NormalizeVector(v)
	if o.store && o.vectors != nil {
		if err := o.vectors.PutVectors(ctx, newLemmaVector(lemma, v)); err != nil {
			return nil, err
		}
	}
	o.remember(lemma, v)
	return v, nil
}

func (o *VectorOracle) remember(lemma string, v []float32) {
	o.vectorCache.Set(lemma, v, int64(4*len(v)+len(lemma)+1))
}

// Wait blocks until pending cache writes are visible.
func (o *VectorOracle) Wait() {
	o.vectorCache.Wait()
	o.scoreCache.Wait()
}

// Close releases the caches. The repository and embedder are left open.
func (o *VectorOracle) Close() error {
	if o.closed.Swap(true) {
		return nil
	}
	o.vectorCache.Close()
	o.scoreCache.Close()
	return nil
}

// NormalizeVector scales a vector to unit length. Zero vectors are returned unchanged.
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// cosine returns the cosine similarity of two vectors, 0 for empty or
// mismatched vectors.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
