package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

const compress = false

// Embedder turns text into a vector. Satisfied by langchaingo embedders.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorDBManager encapsulates the chromem-go database operations for one
// collection. The mutex serializes writes against concurrent webhook
// deliveries; chromem itself guards its internals but interleaved batch adds
// for the same document would not be atomic without it.
type VectorDBManager struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   Embedder
	mu         sync.RWMutex
}

// NewVectorDBManager opens (or creates) a persistent database at dbPath and
// binds the named collection.
func NewVectorDBManager(dbPath, collectionName string, embedder Embedder) (*VectorDBManager, error) {
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create database: %v", models.ErrEmbeddingStore, err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create/get collection: %v", models.ErrEmbeddingStore, err)
	}

	return &VectorDBManager{
		db:         db,
		collection: collection,
		embedder:   embedder,
	}, nil
}

// AddChunks embeds and stores the full ordered chunk list as one batch.
// Any failure fails the whole batch from the caller's perspective.
func (m *VectorDBManager) AddChunks(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := m.embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("%w: failed to embed chunk %d: %v", models.ErrEmbeddingStore, chunk.ChunkID, err)
		}
		docs = append(docs, chromem.Document{
			ID:        fmt.Sprintf("%s-%d", chunk.Fingerprint, chunk.ChunkID),
			Content:   chunk.Content,
			Metadata:  chunkMetadata(chunk),
			Embedding: embedding,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("%w: failed to add documents: %v", models.ErrEmbeddingStore, err)
	}
	return nil
}

// Search returns the k nearest chunks to the query under the collection's
// similarity metric, in similarity order. Fewer than k stored chunks returns
// all of them; an empty collection returns no chunks and no error.
func (m *VectorDBManager) Search(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := m.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	embedding, err := m.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %v", models.ErrEmbeddingStore, err)
	}

	results, err := m.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query by similarity: %v", models.ErrEmbeddingStore, err)
	}

	chunks := make([]models.Chunk, 0, len(results))
	for _, res := range results {
		chunks = append(chunks, chunkFromMetadata(res.Content, res.Metadata))
	}
	return chunks, nil
}

func chunkMetadata(chunk models.Chunk) map[string]string {
	return map[string]string{
		"source":       chunk.SourceFilename,
		"fingerprint":  chunk.Fingerprint,
		"chunk_id":     strconv.Itoa(chunk.ChunkID),
		"total_chunks": strconv.Itoa(chunk.TotalChunks),
	}
}

func chunkFromMetadata(content string, meta map[string]string) models.Chunk {
	chunkID, _ := strconv.Atoi(meta["chunk_id"])
	total, _ := strconv.Atoi(meta["total_chunks"])
	return models.Chunk{
		Content:        content,
		SourceFilename: meta["source"],
		Fingerprint:    meta["fingerprint"],
		ChunkID:        chunkID,
		TotalChunks:    total,
	}
}
