package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// The result has one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne generates the embedding for a single query text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector dimension. It is constant for
	// the lifetime of the process.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
