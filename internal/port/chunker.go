package port

import "mindverse/internal/domain"

type Chunker interface {
	Chunk(text string) ([]domain.Chunk, error)
}
