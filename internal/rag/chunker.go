package rag

import "strings"

const (
	DefaultChunkSize    = 1500
	DefaultChunkOverlap = 200
)

// Chunk splits text into successive windows of at most maxChars runes, each
// window starting maxChars-overlap runes after the previous one so adjacent
// windows share overlap runes of context. Windows are trimmed of surrounding
// whitespace; empty input yields nil. The advance is clamped to at least one
// rune so overlap >= maxChars cannot stall the loop.
func Chunk(text string, maxChars, overlap int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	step := maxChars - overlap
	if step < 1 {
		step = 1
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[start:end])))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
