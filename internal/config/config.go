package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

const (
	defaultChunkSize    = 700
	defaultChunkOverlap = 200
	defaultRetrievalK   = 5
	defaultMaxTokens    = 4000
	defaultVectorDBPath = "./data/vectordb"
	defaultPDFStorage   = "./data/pdfs"
	defaultServerPort   = "5000"
	defaultOpenAIBase   = "https://api.openai.com/v1"
	defaultEmbedModel   = "text-embedding-3-small"
	defaultInferModel   = "gpt-4o-mini"
	defaultBotMode      = "poll"
)

// LLMConfig holds the connection details for one OpenAI-compatible endpoint.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
	Model   string `yaml:"model"`
}

// RAGConfig holds the chunking and retrieval parameters.
type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	RetrievalK   int `yaml:"retrieval_k"`
	MaxTokens    int `yaml:"max_tokens"`
}

// Config is the process-wide configuration, built once at startup and
// passed into each component constructor.
type Config struct {
	TelegramToken  string    `yaml:"telegram_token"`
	BotMode        string    `yaml:"bot_mode"`
	ServerPort     string    `yaml:"server_port"`
	VectorDBPath   string    `yaml:"vector_db_path"`
	PDFStoragePath string    `yaml:"pdf_storage_path"`
	RegistryDSN    string    `yaml:"registry_dsn"`
	RegistryKey    string    `yaml:"registry_key"`
	EmbedLLM       LLMConfig `yaml:"embed_llm"`
	InferLLM       LLMConfig `yaml:"infer_llm"`
	RAG            RAGConfig `yaml:"rag"`
}

// Load builds the configuration from an optional YAML file overlaid with
// environment variables. A .env file next to the binary is honored.
// The path may be empty or point at a missing file; env vars alone are enough.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setIfEnv(&cfg.TelegramToken, "TELEGRAM_BOT_TOKEN")
	setIfEnv(&cfg.BotMode, "BOT_MODE")
	setIfEnv(&cfg.ServerPort, "PORT")
	setIfEnv(&cfg.VectorDBPath, "VECTOR_DB_PATH")
	setIfEnv(&cfg.PDFStoragePath, "PDF_STORAGE_PATH")
	setIfEnv(&cfg.RegistryDSN, "REGISTRY_DSN")
	setIfEnv(&cfg.RegistryKey, "REGISTRY_KEY")
	setIfEnv(&cfg.EmbedLLM.Key, "OPENAI_API_KEY")
	setIfEnv(&cfg.EmbedLLM.BaseURL, "OPENAI_BASE_URL")
	setIfEnv(&cfg.EmbedLLM.Model, "EMBEDDING_MODEL")
	setIfEnv(&cfg.InferLLM.Key, "OPENAI_API_KEY")
	setIfEnv(&cfg.InferLLM.BaseURL, "OPENAI_BASE_URL")
	setIfEnv(&cfg.InferLLM.Model, "INFERENCE_MODEL")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.BotMode == "" {
		cfg.BotMode = defaultBotMode
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = defaultServerPort
	}
	if cfg.VectorDBPath == "" {
		cfg.VectorDBPath = defaultVectorDBPath
	}
	if cfg.PDFStoragePath == "" {
		cfg.PDFStoragePath = defaultPDFStorage
	}
	if cfg.EmbedLLM.BaseURL == "" {
		cfg.EmbedLLM.BaseURL = defaultOpenAIBase
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = defaultEmbedModel
	}
	if cfg.InferLLM.BaseURL == "" {
		cfg.InferLLM.BaseURL = defaultOpenAIBase
	}
	if cfg.InferLLM.Model == "" {
		cfg.InferLLM.Model = defaultInferModel
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = defaultChunkSize
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.RAG.RetrievalK == 0 {
		cfg.RAG.RetrievalK = defaultRetrievalK
	}
	if cfg.RAG.MaxTokens == 0 {
		cfg.RAG.MaxTokens = defaultMaxTokens
	}
}

// Validate reports missing credentials and inconsistent chunk parameters.
// Any error from here is fatal at startup.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN is required", models.ErrConfiguration)
	}
	if c.EmbedLLM.Key == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is required", models.ErrConfiguration)
	}
	if c.BotMode != "poll" && c.BotMode != "webhook" {
		return fmt.Errorf("%w: bot mode must be poll or webhook, got %q", models.ErrConfiguration, c.BotMode)
	}
	if c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			models.ErrConfiguration, c.RAG.ChunkOverlap, c.RAG.ChunkSize)
	}
	return nil
}
