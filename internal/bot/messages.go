package bot

import (
	"fmt"
	"strings"

	"github.com/Harshalexe/Telegram-PDF-QA-Bot/internal/models"
)

const welcomeMessage = `🤖 Welcome to PDF AI Assistant!

I can help you analyze PDF documents and answer questions about them.

How to use:
1. Send me a PDF file
2. Wait for processing confirmation
3. Ask questions about the PDF content

Commands:
/start - Show this message
/help - Get help information

Send me a PDF to get started! 📄`

const helpMessage = `🆘 How to use PDF AI Assistant:

Step 1: Send a PDF file
- The bot will process and analyze your PDF
- Wait for the "✅ PDF processed successfully" message

Step 2: Ask questions
- Type any question about the PDF content
- The AI will search through the document and provide answers

Examples:
- "What is the main topic of this document?"
- "Summarize the key points"
- "What does it say about [specific topic]?"

Supported formats: PDF files only
File size limit: Up to 20MB`

func formatIngestMessage(result *models.IngestResult) string {
	if result.Deduplicated {
		return fmt.Sprintf("✅ This PDF was already processed (%d text chunks).\n💡 You can ask questions about it right away!", result.ChunkCount)
	}
	return fmt.Sprintf("✅ PDF processed successfully!\n📊 Created %d text chunks\n💡 You can now ask questions about the document!", result.ChunkCount)
}

func formatAnswerMessage(result *models.AnswerResult) string {
	if !result.Success {
		return fmt.Sprintf("❌ %s", result.Message)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🤖 Answer:\n%s\n", result.Answer))
	if len(result.Sources) > 0 {
		b.WriteString("\n📚 Sources:\n")
		for _, source := range result.Sources {
			b.WriteString(fmt.Sprintf("• %s (chunk %d)\n", source.Filename, source.ChunkID))
		}
	}
	return b.String()
}
