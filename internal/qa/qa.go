package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

// Retriever is the vector store capability the pipeline searches
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]models.Chunk, error)
}

// Completer is the chat completion capability
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Pipeline answers questions grounded in retrieved document chunks
type Pipeline struct {
	retriever Retriever
	completer Completer
	k         int
}

func NewPipeline(retriever Retriever, completer Completer, k int) *Pipeline {
	return &Pipeline{retriever: retriever, completer: completer, k: k}
}

// Answer retrieves the k nearest chunks, assembles a grounded prompt, and
// asks the model. Every internal failure is folded into the result; the
// caller never sees an error.
func (p *Pipeline) Answer(ctx context.Context, question string) *models.AnswerResult {
	chunks, err := p.retriever.Search(ctx, question, p.k)
	if err != nil {
		log.Error().Err(err).Msg("retrieval failed")
		return &models.AnswerResult{Success: false, Message: fmt.Sprintf("Error generating answer: %v", err)}
	}

	// Nothing retrieved means nothing to ground an answer in. Reply with
	// the fallback sentence instead of letting the model answer from an
	// empty context.
	if len(chunks) == 0 {
		return &models.AnswerResult{
			Success: true,
			Answer:  models.FallbackAnswer,
			Sources: []models.Source{},
		}
	}

	prompt := buildPrompt(question, chunks)

	answer, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("completion failed")
		return &models.AnswerResult{Success: false, Message: fmt.Sprintf("Error generating answer: %v", err)}
	}

	sources := make([]models.Source, len(chunks))
	for i, chunk := range chunks {
		sources[i] = models.Source{Filename: chunk.SourceFilename, ChunkID: chunk.ChunkID}
	}

	return &models.AnswerResult{Success: true, Answer: answer, Sources: sources}
}

// buildPrompt concatenates the retrieved chunks, in similarity order, into
// the fixed grounded template.
func buildPrompt(question string, chunks []models.Chunk) string {
	var contextBlock strings.Builder
	for _, chunk := range chunks {
		contextBlock.WriteString(chunk.Content)
		contextBlock.WriteString("\n\n")
	}
	return fmt.Sprintf(models.QAPromptTemplate, contextBlock.String(), question)
}
