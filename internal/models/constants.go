package models

const (
	// CollectionName is the vector store collection all chunks live in
	CollectionName = "pdf_documents"

	// PageMarkerFormat separates extracted pages for traceability
	PageMarkerFormat = "\n--- Page %d ---\n"

	// FallbackAnswer is emitted verbatim when the context cannot answer the question
	FallbackAnswer = "I don't have enough information in the provided documents to answer this question."
)

var (
	QAPromptTemplate = `You are an AI assistant that answers questions based on PDF documents.
Use the following pieces of context to answer the question at the end.
If you don't know the answer based on the context, say "` + FallbackAnswer + `"

Be concise but comprehensive in your answers. If the context contains specific details, include them in your response.

Context:
%s

Question: %s

Answer: `
)
