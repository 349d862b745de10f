package embedding

import "context"

// MockEmbedder produces deterministic embeddings without a network call.
// Vectors depend only on the input text, so repeated calls are reproducible.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 16
	}
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.encode(text)
	}
	return vectors, nil
}

func (e *MockEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	return e.encode(text), nil
}

func (e *MockEmbedder) encode(text string) []float32 {
	v := make([]float32, e.dimension)
	for i, r := range text {
		v[i%e.dimension] += float32(r) / 1000.0
	}
	return v
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
