package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortContentSingleChunk(t *testing.T) {
	chunks := ChunkText("hello world", 700, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestChunkTextEmptyContent(t *testing.T) {
	assert.Nil(t, ChunkText("", 700, 200))
}

func TestChunkTextInvalidSize(t *testing.T) {
	assert.Nil(t, ChunkText("content", 0, 0))
	assert.Nil(t, ChunkText("content", -5, 0))
}

func TestChunkTextWindowBounds(t *testing.T) {
	text := strings.Repeat("a", 10)
	chunks := ChunkText(text, 5, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, "aaaaa", chunks[0])
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 5, "chunk %d exceeds max size", i)
	}
}

func TestChunkTextCountFormula(t *testing.T) {
	cases := []struct {
		length, size, overlap int
	}{
		{10, 5, 2},
		{700, 700, 200},
		{701, 700, 200},
		{5000, 700, 200},
		{1234, 100, 30},
		{100, 100, 0},
		{101, 100, 0},
	}
	for _, tc := range cases {
		text := strings.Repeat("x", tc.length)
		chunks := ChunkText(text, tc.size, tc.overlap)

		step := tc.size - tc.overlap
		want := 1
		if tc.length > tc.size {
			want = (tc.length - tc.overlap + step - 1) / step
		}
		assert.Len(t, chunks, want, "length=%d size=%d overlap=%d", tc.length, tc.size, tc.overlap)
	}
}

func TestChunkTextReconstruction(t *testing.T) {
	// Concatenating chunks with the overlap removed must reproduce the
	// original text exactly.
	text := "The quick brown fox jumps over the lazy dog. " + strings.Repeat("0123456789", 30)
	size, overlap := 50, 15
	chunks := ChunkText(text, size, overlap)
	require.NotEmpty(t, chunks)

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		rebuilt.WriteString(chunk[overlap:])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkTextDeterministic(t *testing.T) {
	text := strings.Repeat("deterministic input ", 100)
	first := ChunkText(text, 120, 40)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ChunkText(text, 120, 40))
	}
}

func TestChunkTextOverlapClamp(t *testing.T) {
	// overlap >= size falls back to size/2 instead of looping forever
	text := strings.Repeat("b", 30)
	chunks := ChunkText(text, 10, 10)
	require.NotEmpty(t, chunks)
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		rebuilt.WriteString(chunk[5:])
	}
	assert.Equal(t, text, rebuilt.String())
}
