package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/internal/fixtures"
	"github.com/poiesic/topicmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentRepository(t *testing.T) storage.DocumentRepository {
	t.Helper()
	docRepo, vectorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectorRepo.Close()
		docRepo.Close()
		backend.Close()
	})
	return docRepo
}

func TestPutAndGetDocument(t *testing.T) {
	repo := newDocumentRepository(t)
	ctx := context.Background()
	doc := fixtures.Document("I saw a plant. It was growing", "plant")

	require.NoError(t, repo.PutDocuments(ctx, doc))

	stored, err := repo.GetDocument(ctx, "plant")
	require.NoError(t, err)
	assert.Equal(t, doc.Text, stored.Text)
	assert.Equal(t, doc.Tokens, stored.Tokens)
	assert.Equal(t, []int{5, 3}, stored.Coreferents(5))

	_, err = repo.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHasDocument(t *testing.T) {
	repo := newDocumentRepository(t)
	ctx := context.Background()
	doc := fixtures.Document("A plant grows", "plant")

	found, err := repo.HasDocument(ctx, "plant", core.Fingerprint(doc))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.PutDocuments(ctx, doc))

	found, err = repo.HasDocument(ctx, "plant", core.Fingerprint(doc))
	require.NoError(t, err)
	assert.True(t, found)

	other := fixtures.Document("Peter came", "plant")
	found, err = repo.HasDocument(ctx, "plant", core.Fingerprint(other))
	require.NoError(t, err)
	assert.False(t, found, "changed content has a different fingerprint")
}

func TestLabelsKeepRegistrationOrder(t *testing.T) {
	repo := newDocumentRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PutDocuments(ctx,
		fixtures.Document("Peter came", "zeta"),
		fixtures.Document("A plant grows", "alpha"),
	))
	require.NoError(t, repo.PutDocuments(ctx, fixtures.Document("Hudson came", "mid")))
	// replacing keeps the original position
	require.NoError(t, repo.PutDocuments(ctx, fixtures.Document("Dogs and cats.", "zeta")))

	labels, err := repo.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, labels)

	var texts []string
	err = repo.ForEachDocument(ctx, func(doc *core.Document) error {
		texts = append(texts, doc.Text)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dogs and cats.", "A plant grows", "Hudson came"}, texts)
}

func TestForEachDocumentStops(t *testing.T) {
	repo := newDocumentRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.PutDocuments(ctx,
		fixtures.Document("Peter came", "a"),
		fixtures.Document("Hudson came", "b"),
	))

	stop := errors.New("stop")
	calls := 0
	err := repo.ForEachDocument(ctx, func(*core.Document) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = repo.ForEachDocument(cancelled, func(*core.Document) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeleteDocuments(t *testing.T) {
	repo := newDocumentRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.PutDocuments(ctx,
		fixtures.Document("Peter came", "a"),
		fixtures.Document("Hudson came", "b"),
	))

	require.NoError(t, repo.DeleteDocuments(ctx, "a"))
	labels, err := repo.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, labels)

	err = repo.DeleteDocuments(ctx, "b", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	labels, err = repo.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, labels, "a failed delete changes nothing")

	require.NoError(t, repo.DeleteAllDocuments(ctx))
	labels, err = repo.Labels(ctx)
	require.NoError(t, err)
	assert.Empty(t, labels)

	// registration after clearing starts a fresh order
	require.NoError(t, repo.PutDocuments(ctx, fixtures.Document("Peter came", "c")))
	labels, err = repo.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, labels)
}

func TestDocumentsPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	docRepo, vectorRepo, backend, err := NewRepositories(backend)
	require.NoError(t, err)
	require.NoError(t, docRepo.PutDocuments(ctx, fixtures.Document("A plant grows", "plant")))
	require.NoError(t, vectorRepo.Close())
	require.NoError(t, docRepo.Close())
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	docRepo, vectorRepo, backend, err = NewRepositories(backend)
	require.NoError(t, err)
	defer func() {
		vectorRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	doc, err := docRepo.GetDocument(ctx, "plant")
	require.NoError(t, err)
	assert.Equal(t, "A plant grows", doc.Text)
}
