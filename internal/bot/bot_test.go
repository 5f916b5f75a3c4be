package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

type fakeAPI struct {
	sent    []tgbotapi.MessageConfig
	fileURL string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL, nil
}

func (f *fakeAPI) GetWebhookInfo() (tgbotapi.WebhookInfo, error) {
	return tgbotapi.WebhookInfo{}, nil
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return nil
}

func (f *fakeAPI) StopReceivingUpdates() {}

type fakeIngestor struct {
	filenames []string
	result    *models.IngestResult
	err       error
}

func (f *fakeIngestor) Ingest(ctx context.Context, path, filename string) (*models.IngestResult, error) {
	f.filenames = append(f.filenames, filename)
	return f.result, f.err
}

type fakeAnswerer struct {
	question string
	result   *models.AnswerResult
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string) *models.AnswerResult {
	f.question = question
	return f.result
}

func documentUpdate(mimeType, filename string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 77},
		Document: &tgbotapi.Document{FileID: "file-1", FileName: filename, MimeType: mimeType},
	}}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 77},
		Text: text,
	}}
}

func TestHandleUpdateRejectsNonPDFWithoutIngesting(t *testing.T) {
	api := &fakeAPI{}
	ingestor := &fakeIngestor{}
	d := NewDispatcher(api, ingestor, &fakeAnswerer{}, t.TempDir())

	d.HandleUpdate(context.Background(), documentUpdate("application/msword", "report.docx"))

	assert.Empty(t, ingestor.filenames)
	require.Len(t, api.sent, 1)
	assert.Contains(t, api.sent[0].Text, models.ErrNotAPDF.Error())
}

func TestHandleUpdateIngestsPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake body"))
	}))
	defer srv.Close()

	api := &fakeAPI{fileURL: srv.URL + "/manual.pdf"}
	ingestor := &fakeIngestor{result: &models.IngestResult{Fingerprint: "abc123", ChunkCount: 4}}
	d := NewDispatcher(api, ingestor, &fakeAnswerer{}, t.TempDir())

	d.HandleUpdate(context.Background(), documentUpdate("application/pdf", "manual.pdf"))

	require.Equal(t, []string{"manual.pdf"}, ingestor.filenames)
	require.Len(t, api.sent, 2)
	assert.Contains(t, api.sent[0].Text, "PDF received")
	assert.Contains(t, api.sent[1].Text, "PDF processed successfully")
	assert.Contains(t, api.sent[1].Text, "4 text chunks")
}

func TestHandleUpdateReportsIngestionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake body"))
	}))
	defer srv.Close()

	api := &fakeAPI{fileURL: srv.URL + "/scan.pdf"}
	ingestor := &fakeIngestor{err: models.ErrExtraction}
	d := NewDispatcher(api, ingestor, &fakeAnswerer{}, t.TempDir())

	d.HandleUpdate(context.Background(), documentUpdate("application/pdf", "scan.pdf"))

	require.Len(t, api.sent, 2)
	assert.Contains(t, api.sent[1].Text, "❌ Error processing PDF")
	assert.Contains(t, api.sent[1].Text, models.ErrExtraction.Error())
}

func TestHandleUpdateRoutesQuestionToAnswerer(t *testing.T) {
	api := &fakeAPI{}
	answerer := &fakeAnswerer{result: &models.AnswerResult{
		Success: true,
		Answer:  "The capital is Paris.",
		Sources: []models.Source{{Filename: "geo.pdf", ChunkID: 2}},
	}}
	d := NewDispatcher(api, &fakeIngestor{}, answerer, t.TempDir())

	d.HandleUpdate(context.Background(), textUpdate("What is the capital of France?"))

	assert.Equal(t, "What is the capital of France?", answerer.question)
	require.Len(t, api.sent, 2)
	assert.Contains(t, api.sent[0].Text, "Thinking")
	assert.Contains(t, api.sent[1].Text, "The capital is Paris.")
	assert.Contains(t, api.sent[1].Text, "geo.pdf")
}

func TestHandleUpdateCommands(t *testing.T) {
	api := &fakeAPI{}
	d := NewDispatcher(api, &fakeIngestor{}, &fakeAnswerer{}, t.TempDir())

	start := textUpdate("/start")
	start.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	d.HandleUpdate(context.Background(), start)

	help := textUpdate("/help")
	help.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}}
	d.HandleUpdate(context.Background(), help)

	require.Len(t, api.sent, 2)
	assert.Equal(t, welcomeMessage, api.sent[0].Text)
	assert.Equal(t, helpMessage, api.sent[1].Text)
}

func TestHandleUpdateIgnoresEmptyUpdate(t *testing.T) {
	api := &fakeAPI{}
	d := NewDispatcher(api, &fakeIngestor{}, &fakeAnswerer{}, t.TempDir())

	d.HandleUpdate(context.Background(), tgbotapi.Update{})

	assert.Empty(t, api.sent)
}
