package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/bot"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/chromemdb"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/config"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/embedding"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/helper"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/ingest"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/llmservice"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/qa"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/registry"
	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/server"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	if err := helper.CreateFolder(cfg.PDFStoragePath); err != nil {
		log.Fatal().Err(err).Msg("Error creating PDF storage folder")
	}
	if err := helper.CreateFolder(cfg.VectorDBPath); err != nil {
		log.Fatal().Err(err).Msg("Error creating vector database folder")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	store, err := chromemdb.NewVectorDBManager(cfg.VectorDBPath, models.CollectionName, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector database manager")
	}

	llmClient, err := llmservice.NewClient(&cfg.InferLLM, cfg.RAG.MaxTokens)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing LLM client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var journal ingest.Journal
	if cfg.RegistryDSN != "" {
		reg, err := registry.Connect(cfg.RegistryDSN, cfg.RegistryKey, false)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to ingestion registry")
		}
		defer reg.Close()
		if err := reg.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error initializing ingestion registry")
		}
		journal = reg
	}

	ingestPipeline := ingest.NewPipeline(store, journal, cfg.RAG)
	answerPipeline := qa.NewPipeline(store, llmClient, cfg.RAG.RetrievalK)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to Telegram")
	}
	log.Info().Str("bot", api.Self.UserName).Msg("authorized")
	dispatcher := bot.NewDispatcher(api, ingestPipeline, answerPipeline, cfg.PDFStoragePath)

	switch cfg.BotMode {
	case "webhook":
		runWebhook(ctx, dispatcher, cfg.ServerPort)
	default:
		dispatcher.Poll(ctx)
	}

	log.Info().Msg("shutdown complete")
}

func runWebhook(ctx context.Context, dispatcher *bot.Dispatcher, port string) {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.NewRouter(dispatcher),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("webhook server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down webhook server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}
