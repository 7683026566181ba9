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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	seq, err := backend.GetSequence(documentSeq)
	if err != nil {
		return nil, err
	}
	return &DocumentRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the order sequence.
func (r *DocumentRepository) Close() error {
	return r.seq.Release()
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutDocuments stores documents, replacing any stored under the same label.
func (r *DocumentRepository) PutDocuments(ctx context.Context, docs ...*core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			seq, found, err := readSeq(tx, doc.Label)
			if err != nil {
				return err
			}
			if !found {
				if seq, err = r.seq.Next(); err != nil {
					return err
				}
				if err := tx.Set(makeDocumentLabelKey(doc.Label), encodeSeq(seq)); err != nil {
					return err
				}
				if err := tx.Set(makeDocumentOrderKey(seq), []byte(doc.Label)); err != nil {
					return err
				}
			}

			if err := tx.Set(makeDocumentKey(doc.Label), storage.MarshalDocument(doc)); err != nil {
				return err
			}
			fp := storage.MarshalID(core.Fingerprint(doc))
			if err := tx.Set(makeDocumentFingerprintKey(doc.Label), fp); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a document by label.
func (r *DocumentRepository) GetDocument(ctx context.Context, label string) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, label)
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

// HasDocument reports whether a document with the label and fingerprint is stored.
func (r *DocumentRepository) HasDocument(ctx context.Context, label string, fingerprint core.ID) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentFingerprintKey(label))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			stored, err := storage.UnmarshalID(val)
			found = err == nil && stored == fingerprint
			return err
		})
	}, false)
	return found, err
}

// DeleteDocuments removes documents by label.
func (r *DocumentRepository) DeleteDocuments(ctx context.Context, labels ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, label := range labels {
			seq, found, err := readSeq(tx, label)
			if err != nil {
				return err
			}
			if !found {
				return storage.ErrNotFound
			}
			keys := [][]byte{
				makeDocumentOrderKey(seq),
				makeDocumentLabelKey(label),
				makeDocumentKey(label),
				makeDocumentFingerprintKey(label),
			}
			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteAllDocuments removes every stored document.
func (r *DocumentRepository) DeleteAllDocuments(ctx context.Context) error {
	return r.backend.DropPrefixes(documentRecordPrefix, documentOrderPrefix, documentLabelPrefix, documentFPPrefix)
}

// Labels returns the stored labels in registration order.
func (r *DocumentRepository) Labels(ctx context.Context) ([]string, error) {
	var labels []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return iterateOrder(tx, func(label string) error {
			labels = append(labels, label)
			return nil
		})
	}, false)
	return labels, err
}

// ForEachDocument calls fn for every stored document in registration order.
func (r *DocumentRepository) ForEachDocument(ctx context.Context, fn func(*core.Document) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		return iterateOrder(tx, func(label string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := readDocument(tx, label)
			if err != nil {
				return err
			}
			if doc == nil {
				r.backend.logger.Warn("order index points at missing document", "label", label)
				return nil
			}
			return fn(doc)
		})
	}, false)
}

// Helper methods

// iterateOrder walks the order index and passes each label to fn.
func iterateOrder(tx *badger.Txn, fn func(label string) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(documentOrderPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		label, err := iter.Item().ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := fn(string(label)); err != nil {
			return err
		}
	}
	return nil
}

// readSeq looks up the order sequence of a label.
func readSeq(tx *badger.Txn, label string) (uint64, bool, error) {
	item, err := tx.Get(makeDocumentLabelKey(label))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return 0, false, err
	}
	if len(val) != 8 {
		return 0, false, storage.ErrSerializationFailed
	}
	return decodeSeq(val), true, nil
}

// readDocument reads a document from the transaction. Returns nil, nil when absent.
func readDocument(tx *badger.Txn, label string) (*core.Document, error) {
	item, err := tx.Get(makeDocumentKey(label))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	return doc, err
}
