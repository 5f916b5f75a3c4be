package llmservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/config"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

const (
	maxAttempts = 3
	temperature = 0.1
	retryDelay  = 500 * time.Millisecond
)

// Client calls an OpenAI-compatible chat completion endpoint with
// near-deterministic sampling and a bounded output size.
type Client struct {
	llm       llms.Model
	maxTokens int
}

// NewClient builds the chat completion client
func NewClient(llmConfig *config.LLMConfig, maxTokens int) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(llmConfig.BaseURL),
		openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
		openai.WithModel(llmConfig.Model),
	)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, maxTokens: maxTokens}, nil
}

// Complete sends the prompt and returns the generated text. Transient
// failures are retried up to maxAttempts before surfacing an error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := c.llm.GenerateContent(ctx, messages,
			llms.WithTemperature(temperature),
			llms.WithMaxTokens(c.maxTokens),
		)
		if err == nil {
			if len(res.Choices) == 0 {
				return "", fmt.Errorf("%w: completion returned no choices", models.ErrLLM)
			}
			return res.Choices[0].Content, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("chat completion failed")
		if attempt < maxAttempts {
			select {
			case <-time.After(time.Duration(attempt) * retryDelay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", models.ErrLLM, ctx.Err())
			}
		}
	}
	return "", fmt.Errorf("%w: %v", models.ErrLLM, lastErr)
}
