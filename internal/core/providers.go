package core

import "context"

// QAProvider answers a rules question, optionally grounded on rulebook
// excerpts assembled by the caller.
type QAProvider interface {
	Ask(ctx context.Context, question, rulebookContext string) (Answer, error)
}

// Embedder turns text into a single embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
