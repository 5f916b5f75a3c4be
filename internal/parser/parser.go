package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

// ExtractText reads a PDF file and returns its text with each page preceded
// by a page marker so chunk content stays traceable to a page. An unreadable
// source or an empty/whitespace-only result is an extraction failure, never
// a zero-chunk success.
func ExtractText(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open file: %v", models.ErrExtraction, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: failed to stat file: %v", models.ErrExtraction, err)
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse PDF: %v", models.ErrExtraction, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to extract page %d: %v", models.ErrExtraction, i, err)
		}
		if pageText == "" {
			continue
		}
		text.WriteString(fmt.Sprintf(models.PageMarkerFormat, i))
		text.WriteString(pageText)
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: PDF is empty or could not be read", models.ErrExtraction)
	}
	return text.String(), nil
}
