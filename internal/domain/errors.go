package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for misuse of the retrieval engine.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrEmptyBatch           = errors.New("empty vector batch")
	ErrDocumentNotFound     = errors.New("document not found")
)

// Sentinel errors for the user registry.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// DimensionMismatchError reports vectors of unequal length, either within an
// index build batch or between a query and the index.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// EmbeddingError reports an embedding adapter failure during ingestion,
// including a batch whose length does not match the chunk count.
type EmbeddingError struct {
	DocumentID string
	Err        error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed for document %q: %v", e.DocumentID, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// AnswerError reports an answer-generation adapter failure at query time.
type AnswerError struct {
	DocumentID string
	Err        error
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("answer generation failed for document %q: %v", e.DocumentID, e.Err)
}

func (e *AnswerError) Unwrap() error { return e.Err }
