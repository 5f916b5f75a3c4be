package models

import "errors"

var (
	// ErrExtraction means the source could not be parsed or yielded no text
	ErrExtraction = errors.New("extraction failed")
	// ErrNotAPDF means the uploaded document is not a PDF
	ErrNotAPDF = errors.New("file is not a PDF")
	// ErrEmbeddingStore means an add or search against the vector store failed
	ErrEmbeddingStore = errors.New("embedding store failure")
	// ErrLLM means the chat completion call failed after retries were exhausted
	ErrLLM = errors.New("llm call failed")
	// ErrConfiguration means a required credential or model is missing at startup
	ErrConfiguration = errors.New("invalid configuration")
)
