package badger

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(backend *Backend) (*VectorRepository, error) {
	return &VectorRepository{
		backend: backend,
	}, nil
}

// Close releases resources. VectorRepository has no resources to release.
func (r *VectorRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *VectorRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutVectors stores vectors, replacing any stored for the same lemma.
func (r *VectorRepository) PutVectors(ctx context.Context, vectors ...*core.LemmaVector) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, v := range vectors {
			if err := tx.Set(makeVectorKey(v.Lemma), storage.MarshalLemmaVector(v)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetVector retrieves the vector of a lemma.
func (r *VectorRepository) GetVector(ctx context.Context, lemma string) (*core.LemmaVector, error) {
	var result *core.LemmaVector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readVector(tx, lemma)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetVectors retrieves the vectors of several lemmas, skipping missing ones.
func (r *VectorRepository) GetVectors(ctx context.Context, lemmas ...string) ([]*core.LemmaVector, error) {
	var result []*core.LemmaVector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, lemma := range lemmas {
			v, err := readVector(tx, lemma)
			if err != nil {
				return err
			}
			if v != nil {
				result = append(result, v)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteAllVectors removes every stored vector.
func (r *VectorRepository) DeleteAllVectors(ctx context.Context) error {
	return r.backend.DropPrefixes(vectorRecordPrefix)
}

// CountVectors returns the number of stored vectors.
func (r *VectorRepository) CountVectors(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// FindSimilar finds lemmas whose stored vectors are similar to the given vector.
// Vectors are expected to be normalized, so the dot product is the cosine similarity.
func (r *VectorRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ScoredLemma, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}
	var results []*core.ScoredLemma

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.LemmaVector
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalLemmaVector(val)
				return err
			})
			if err != nil {
				return err
			}
			if len(record.Vector) == 0 {
				continue
			}

			similarity := dotProduct(vector, record.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.ScoredLemma{
					Lemma: record.Lemma,
					Score: similarity,
				})
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.ScoredLemma) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// readVector reads a lemma vector from the transaction. Returns nil, nil when absent.
func readVector(tx *badger.Txn, lemma string) (*core.LemmaVector, error) {
	item, err := tx.Get(makeVectorKey(lemma))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var v *core.LemmaVector
	err = item.Value(func(val []byte) error {
		var err error
		v, err = storage.UnmarshalLemmaVector(val)
		return err
	})
	return v, err
}
