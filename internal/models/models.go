package models

// Chunk represents a bounded window of extracted document text with its metadata
type Chunk struct {
	Content        string
	SourceFilename string
	Fingerprint    string
	ChunkID        int
	TotalChunks    int
}

// Source identifies where a retrieved chunk came from
type Source struct {
	Filename string `json:"filename"`
	ChunkID  int    `json:"chunk_id"`
}

// IngestResult is returned by the ingestion pipeline on success
type IngestResult struct {
	Fingerprint  string
	ChunkCount   int
	Deduplicated bool
}

// AnswerResult is the structured outcome of the answer pipeline.
// Failures are reported through Success/Message, never as faults.
type AnswerResult struct {
	Success bool
	Answer  string
	Sources []Source
	Message string
}
