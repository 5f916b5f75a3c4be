package bot

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/helper"
)

// downloadDocument fetches the uploaded file from the Bot API and writes it
// under the PDF storage directory with a unique name.
func (d *Dispatcher) downloadDocument(doc *tgbotapi.Document) (string, error) {
	url, err := d.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file: %w", err)
	}

	id, err := helper.GenerateUUID()
	if err != nil {
		return "", err
	}
	path := filepath.Join(d.storageDir, fmt.Sprintf("%s_%s", id, doc.FileName))

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}
