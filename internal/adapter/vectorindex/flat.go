// Package vectorindex provides an exact, in-memory nearest-neighbor index
// over a single document's chunk embeddings. The index is flat: every query
// is compared against every stored vector by squared Euclidean distance.
// Chunk counts per document are small, so exactness and simplicity win over
// an approximate structure; a production-scale variant could swap in an
// approximate index behind the same contract.
package vectorindex

import (
	"fmt"
	"sort"

	"mindverse/internal/domain"
)

// Flat is an immutable flat vector index. It is built once from a complete
// batch and safe for concurrent searches afterwards.
type Flat struct {
	vectors   [][]float32
	dimension int
}

// Hit is one search result: the position of a stored vector and its squared
// Euclidean distance from the query.
type Hit struct {
	Position int
	Distance float64
}

// Empty returns an index over zero vectors. Size reports 0 and Search always
// returns an empty result.
func Empty() *Flat {
	return &Flat{}
}

// Build constructs an index from a complete batch of vectors. It fails with
// domain.ErrEmptyBatch on an empty batch and with a DimensionMismatchError
// if the batch vectors do not all share one dimension.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	dim := len(vectors[0])
	owned := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, &domain.DimensionMismatchError{Want: dim, Got: len(v)}
		}
		// Copy so later mutation of the caller's slices cannot break
		// the index's immutability.
		owned[i] = append([]float32(nil), v...)
	}

	return &Flat{vectors: owned, dimension: dim}, nil
}

// Size returns the number of stored vectors.
func (f *Flat) Size() int {
	return len(f.vectors)
}

// Dimension returns the vector dimension, or 0 for an empty index.
func (f *Flat) Dimension() int {
	return f.dimension
}

// Search returns the min(k, Size()) stored vectors nearest to the query,
// sorted ascending by squared Euclidean distance. Ties are broken by
// ascending position so identical queries against an unchanged index always
// return identical results.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d: %w", k, domain.ErrInvalidConfiguration)
	}
	if len(f.vectors) == 0 {
		return nil, nil
	}
	if len(query) != f.dimension {
		return nil, &domain.DimensionMismatchError{Want: f.dimension, Got: len(query)}
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Position: i, Distance: squaredDistance(query, v)}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Position < hits[j].Position
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
