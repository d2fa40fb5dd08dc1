package rag

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

// Chunk is one embeddable slice of a longer document.
type Chunk struct {
	Text       string
	TokenCount int
	Index      int
}

type ChunkerConfig struct {
	MaxTokens     int
	OverlapTokens int
}

// DefaultChunkerConfig sizes chunks for the embedding model's context while
// carrying enough overlap that a rule split across chunks is still findable.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxTokens:     800,
		OverlapTokens: 100,
	}
}

// ChunkText splits text into token-bounded chunks with overlap between
// neighbours. Paragraph structure is flattened first; chunk boundaries fall
// on token edges.
func ChunkText(text string, cfg ChunkerConfig) []Chunk {
	text = normalize(text)
	if text == "" {
		return nil
	}

	enc := getTokenizer()
	tokens := enc.Encode(text, nil, nil)

	step := cfg.MaxTokens - cfg.OverlapTokens
	if step < 1 {
		step = cfg.MaxTokens
	}

	var chunks []Chunk
	for start := 0; start < len(tokens); start += step {
		end := start + cfg.MaxTokens
		if end > len(tokens) {
			end = len(tokens)
		}

		part := tokens[start:end]
		chunkText := strings.TrimSpace(enc.Decode(part))
		if chunkText != "" {
			chunks = append(chunks, Chunk{
				Text:       chunkText,
				TokenCount: len(part),
				Index:      len(chunks),
			})
		}

		if end == len(tokens) {
			break
		}
	}

	return chunks
}

// CountTokens returns the token length of text under the embedding
// tokenizer.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}

// normalize collapses soft line wraps inside paragraphs and trims blank
// runs, keeping paragraph breaks as sentence separation.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}
