package port

import "context"

// LLM represents a language model for text generation.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// Answerer turns retrieved document context and a question into prose.
type Answerer interface {
	// Answer generates an answer to the question using only the supplied
	// context text. The context may be empty; the Answerer must still respond.
	Answer(ctx context.Context, question, contextText string) (string, error)
}
