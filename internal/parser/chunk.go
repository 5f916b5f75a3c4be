package parser

// ChunkText splits content into overlapping windows of at most maxChars
// characters, each window starting maxChars-overlapChars after the previous
// one. The final window is shorter when the remainder does not fill it.
// Pure function of its inputs: identical (content, maxChars, overlapChars)
// always yields the identical chunk list.
func ChunkText(content string, maxChars, overlapChars int) []string {
	if maxChars <= 0 || len(content) == 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	contentLen := len(content)
	if contentLen <= maxChars {
		return []string{content}
	}

	var chunks []string
	step := maxChars - overlapChars
	for start := 0; start < contentLen; start += step {
		end := start + maxChars
		if end > contentLen {
			end = contentLen
		}
		chunks = append(chunks, content[start:end])
		if end == contentLen {
			break
		}
	}
	return chunks
}
