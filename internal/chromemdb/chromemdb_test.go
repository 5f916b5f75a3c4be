package chromemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

// fakeEmbedder maps known texts to fixed unit vectors so similarity
// ordering is predictable without a live embedding service.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func newTestStore(t *testing.T) *VectorDBManager {
	t.Helper()
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"cats are mammals":   {1, 0, 0},
		"planes have wings":  {0, 1, 0},
		"tell me about cats": {1, 0, 0},
	}}
	store, err := NewVectorDBManager(t.TempDir(), models.CollectionName, embedder)
	require.NoError(t, err)
	return store
}

func TestSearchEmptyCollection(t *testing.T) {
	store := newTestStore(t)
	chunks, err := store.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestAddAndSearchRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.AddChunks(ctx, []models.Chunk{
		{Content: "cats are mammals", SourceFilename: "animals.pdf", Fingerprint: "aaaa", ChunkID: 0, TotalChunks: 1},
		{Content: "planes have wings", SourceFilename: "aviation.pdf", Fingerprint: "bbbb", ChunkID: 0, TotalChunks: 1},
	})
	require.NoError(t, err)

	chunks, err := store.Search(ctx, "tell me about cats", 1)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "cats are mammals", chunks[0].Content)
	assert.Equal(t, "animals.pdf", chunks[0].SourceFilename)
	assert.Equal(t, "aaaa", chunks[0].Fingerprint)
	assert.Equal(t, 0, chunks[0].ChunkID)
	assert.Equal(t, 1, chunks[0].TotalChunks)
}

func TestSearchClampsKToStoredCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.AddChunks(ctx, []models.Chunk{
		{Content: "cats are mammals", SourceFilename: "animals.pdf", Fingerprint: "aaaa", ChunkID: 0, TotalChunks: 2},
		{Content: "planes have wings", SourceFilename: "animals.pdf", Fingerprint: "aaaa", ChunkID: 1, TotalChunks: 2},
	})
	require.NoError(t, err)

	chunks, err := store.Search(ctx, "tell me about cats", 5)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestAddChunksEmptyBatchIsNoop(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddChunks(context.Background(), nil))
}
