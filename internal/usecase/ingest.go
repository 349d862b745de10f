package usecase

import (
	"context"
	"fmt"

	"mindverse/internal/adapter/cache"
	"mindverse/internal/adapter/docstore"
	"mindverse/internal/adapter/vectorindex"
	"mindverse/internal/domain"
	"mindverse/internal/port"
)

// IngestUseCase turns a document's raw text into a published, queryable
// Document: chunk, embed, index, then publish. Nothing is visible in the
// store until every step has succeeded, so a failed ingestion leaves prior
// state untouched.
type IngestUseCase struct {
	chunker  port.Chunker
	embedder port.Embedder
	store    *docstore.Store
	cache    *cache.AnswerCache
}

func NewIngestUseCase(
	chunker port.Chunker,
	embedder port.Embedder,
	store *docstore.Store,
	answerCache *cache.AnswerCache,
) *IngestUseCase {
	return &IngestUseCase{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		cache:    answerCache,
	}
}

// Ingest chunks and indexes rawText under documentID, replacing any earlier
// document with the same ID. A document with no extractable words still
// ingests successfully with an empty index, so "uploaded" always implies
// "queryable". An embedding batch whose length differs from the chunk count
// is a hard EmbeddingError: silently truncating or padding would
// desynchronize chunk indices from vector positions.
func (u *IngestUseCase) Ingest(ctx context.Context, documentID, rawText, sourcePath string) (*docstore.Document, error) {
	chunks, err := u.chunker.Chunk(rawText)
	if err != nil {
		return nil, fmt.Errorf("chunking %q: %w", documentID, err)
	}

	index := vectorindex.Empty()
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		vectors, err := u.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, &domain.EmbeddingError{DocumentID: documentID, Err: err}
		}
		if len(vectors) != len(chunks) {
			return nil, &domain.EmbeddingError{
				DocumentID: documentID,
				Err:        fmt.Errorf("embedded %d chunks, got %d vectors", len(chunks), len(vectors)),
			}
		}

		index, err = vectorindex.Build(vectors)
		if err != nil {
			return nil, fmt.Errorf("building index for %q: %w", documentID, err)
		}
	}

	doc := &docstore.Document{
		ID:         documentID,
		Chunks:     chunks,
		Index:      index,
		SourcePath: sourcePath,
	}
	if err := u.store.Put(doc); err != nil {
		return nil, err
	}

	if u.cache != nil {
		u.cache.Invalidate(documentID)
	}
	return doc, nil
}
