package chunker

import (
	"fmt"
	"strings"

	"mindverse/internal/domain"
)

// DefaultMaxWords bounds chunk size when no explicit limit is configured.
const DefaultMaxWords = 300

// WordChunker partitions text into consecutive groups of at most maxWords
// whitespace-separated words. Boundaries never split inside a word, and
// re-splitting the chunk texts reproduces the original word sequence.
type WordChunker struct {
	maxWords int
}

func NewWordChunker(maxWords int) *WordChunker {
	return &WordChunker{maxWords: maxWords}
}

// Chunk splits text into ordered, 0-indexed chunks. Every chunk except
// possibly the last holds exactly maxWords words; each chunk's text joins
// its words with single spaces. Text with no words yields an empty sequence,
// which callers treat as "no retrievable content" rather than an error.
func (c *WordChunker) Chunk(text string) ([]domain.Chunk, error) {
	if c.maxWords < 1 {
		return nil, fmt.Errorf("max words per chunk must be >= 1, got %d: %w",
			c.maxWords, domain.ErrInvalidConfiguration)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, (len(words)+c.maxWords-1)/c.maxWords)
	for start := 0; start < len(words); start += c.maxWords {
		end := start + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			Index: len(chunks),
			Text:  strings.Join(words[start:end], " "),
		})
	}

	return chunks, nil
}
