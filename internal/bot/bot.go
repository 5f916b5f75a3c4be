package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

const pdfMimeType = "application/pdf"

// API is the slice of the Telegram Bot API the dispatcher needs: sending
// replies, resolving uploads, and managing the update subscription.
// *tgbotapi.BotAPI satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetWebhookInfo() (tgbotapi.WebhookInfo, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Ingestor is the document ingestion capability
type Ingestor interface {
	Ingest(ctx context.Context, path, filename string) (*models.IngestResult, error)
}

// Answerer is the question answering capability
type Answerer interface {
	Answer(ctx context.Context, question string) *models.AnswerResult
}

// Dispatcher routes one inbound Telegram update to exactly one pipeline.
// Each update is handled independently; there is no cross-event ordering.
type Dispatcher struct {
	api        API
	ingestor   Ingestor
	answerer   Answerer
	storageDir string
}

func NewDispatcher(api API, ingestor Ingestor, answerer Answerer, storageDir string) *Dispatcher {
	return &Dispatcher{
		api:        api,
		ingestor:   ingestor,
		answerer:   answerer,
		storageDir: storageDir,
	}
}

// HandleUpdate dispatches a single update. Failures become user-visible
// replies; this method never returns an error so one bad event cannot take
// down the dispatch loop.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	switch {
	case msg.IsCommand():
		d.handleCommand(msg)
	case msg.Document != nil:
		d.handleDocument(ctx, msg)
	case msg.Text != "":
		d.handleQuestion(ctx, msg)
	}
}

func (d *Dispatcher) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		d.reply(msg.Chat.ID, welcomeMessage)
	case "help":
		d.reply(msg.Chat.ID, helpMessage)
	}
}

func (d *Dispatcher) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	doc := msg.Document
	if !isPDFDocument(doc) {
		log.Warn().Str("mime_type", doc.MimeType).Int64("chat_id", msg.Chat.ID).Msg("rejected non-PDF upload")
		d.reply(msg.Chat.ID, fmt.Sprintf("❌ Error handling document: %v", models.ErrNotAPDF))
		return
	}

	d.reply(msg.Chat.ID, "📄 PDF received! Processing...")

	path, err := d.downloadDocument(doc)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("failed to download document")
		d.reply(msg.Chat.ID, fmt.Sprintf("❌ Error handling document: %v", err))
		return
	}

	result, err := d.ingestor.Ingest(ctx, path, doc.FileName)
	if err != nil {
		log.Error().Err(err).Str("filename", doc.FileName).Msg("ingestion failed")
		d.reply(msg.Chat.ID, fmt.Sprintf("❌ Error processing PDF: %v", err))
		return
	}

	d.reply(msg.Chat.ID, formatIngestMessage(result))
}

func (d *Dispatcher) handleQuestion(ctx context.Context, msg *tgbotapi.Message) {
	d.reply(msg.Chat.ID, "🤔 Thinking...")
	result := d.answerer.Answer(ctx, msg.Text)
	d.reply(msg.Chat.ID, formatAnswerMessage(result))
}

// isPDFDocument gates uploads on the declared MIME type. Anything else is
// rejected before download, so a bad upload never reaches the store.
func isPDFDocument(doc *tgbotapi.Document) bool {
	return doc.MimeType == pdfMimeType
}

func (d *Dispatcher) reply(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	if _, err := d.api.Send(reply); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}

// Poll runs the long-poll loop, one update at a time, until ctx is canceled
func (d *Dispatcher) Poll(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := d.api.GetUpdatesChan(u)

	log.Info().Msg("polling for updates")
	for {
		select {
		case <-ctx.Done():
			d.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			d.HandleUpdate(ctx, update)
		}
	}
}
