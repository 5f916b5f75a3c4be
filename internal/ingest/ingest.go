package ingest

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/config"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/helper"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/parser"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/registry"
)

// Store is the vector store capability the pipeline writes to
type Store interface {
	AddChunks(ctx context.Context, chunks []models.Chunk) error
}

// Journal records completed ingestions for deduplication. Optional.
type Journal interface {
	Lookup(ctx context.Context, fingerprint string) (*registry.Ingestion, error)
	Record(ctx context.Context, fingerprint, filename string, chunkCount int) error
}

// Pipeline orchestrates hash -> extract -> chunk -> tag -> store
type Pipeline struct {
	store   Store
	journal Journal
	extract func(path string) (string, error)
	cfg     config.RAGConfig
}

// NewPipeline builds an ingestion pipeline. journal may be nil, in which case
// re-ingestion of identical files proceeds redundantly.
func NewPipeline(store Store, journal Journal, cfg config.RAGConfig) *Pipeline {
	return &Pipeline{
		store:   store,
		journal: journal,
		extract: parser.ExtractText,
		cfg:     cfg,
	}
}

// Ingest processes one PDF file into the vector store. The input file is
// never mutated. The store add is all-or-nothing from the caller's
// perspective: any embed or add failure fails the whole ingestion.
func (p *Pipeline) Ingest(ctx context.Context, path, filename string) (*models.IngestResult, error) {
	fingerprint, err := helper.Fingerprint(path)
	if err != nil {
		return nil, err
	}

	if p.journal != nil {
		prior, err := p.journal.Lookup(ctx, fingerprint)
		if err != nil {
			log.Warn().Err(err).Str("fingerprint", fingerprint).Msg("registry lookup failed, ingesting anyway")
		} else if prior != nil {
			log.Info().Str("fingerprint", fingerprint).Str("filename", prior.Filename).Msg("document already ingested")
			return &models.IngestResult{
				Fingerprint:  fingerprint,
				ChunkCount:   prior.ChunkCount,
				Deduplicated: true,
			}, nil
		}
	}

	text, err := p.extract(path)
	if err != nil {
		return nil, err
	}

	chunkStrings := parser.ChunkText(text, p.cfg.ChunkSize, p.cfg.ChunkOverlap)

	chunks := make([]models.Chunk, len(chunkStrings))
	for i, content := range chunkStrings {
		chunks[i] = models.Chunk{
			Content:        content,
			SourceFilename: filename,
			Fingerprint:    fingerprint,
			ChunkID:        i,
			TotalChunks:    len(chunkStrings),
		}
	}

	if err := p.store.AddChunks(ctx, chunks); err != nil {
		return nil, err
	}

	if p.journal != nil {
		if err := p.journal.Record(ctx, fingerprint, filename, len(chunks)); err != nil {
			log.Warn().Err(err).Str("fingerprint", fingerprint).Msg("failed to record ingestion")
		}
	}

	log.Info().Str("fingerprint", fingerprint).Int("chunks", len(chunks)).Str("filename", filename).Msg("document ingested")
	return &models.IngestResult{Fingerprint: fingerprint, ChunkCount: len(chunks)}, nil
}
