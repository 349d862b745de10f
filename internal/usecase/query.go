package usecase

import (
	"context"
	"strings"

	"mindverse/internal/adapter/cache"
	"mindverse/internal/adapter/docstore"
	"mindverse/internal/domain"
	"mindverse/internal/port"
)

// DefaultTopK is the number of chunks retrieved per question when the caller
// does not ask for a specific count.
const DefaultTopK = 3

// QueryUseCase answers a question against one ingested document: embed the
// question, retrieve the nearest chunks, assemble context, generate.
type QueryUseCase struct {
	store    *docstore.Store
	embedder port.Embedder
	answerer port.Answerer
	cache    *cache.AnswerCache
	topK     int
}

func NewQueryUseCase(
	store *docstore.Store,
	embedder port.Embedder,
	answerer port.Answerer,
	answerCache *cache.AnswerCache,
	topK int,
) *QueryUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &QueryUseCase{
		store:    store,
		embedder: embedder,
		answerer: answerer,
		cache:    answerCache,
		topK:     topK,
	}
}

// Answer answers the question from the document's most relevant chunks.
// k <= 0 selects the configured default. The document must have been
// ingested first (domain.ErrDocumentNotFound otherwise). A document with an
// empty index produces empty context but the Answerer is still invoked; it
// is the model's job to degrade gracefully.
func (u *QueryUseCase) Answer(ctx context.Context, documentID, question string, k int) (string, error) {
	if k <= 0 {
		k = u.topK
	}

	doc, err := u.store.Get(documentID)
	if err != nil {
		return "", err
	}

	if u.cache != nil {
		if answer, ok := u.cache.Get(documentID, question, k); ok {
			return answer, nil
		}
	}

	queryVec, err := u.embedder.EmbedOne(ctx, question)
	if err != nil {
		return "", &domain.EmbeddingError{DocumentID: documentID, Err: err}
	}

	hits, err := doc.Index.Search(queryVec, k)
	if err != nil {
		return "", err
	}

	// Closest chunk first: some answer prompts are sensitive to context
	// ordering.
	parts := make([]string, len(hits))
	for i, hit := range hits {
		parts[i] = doc.Chunks[hit.Position].Text
	}
	contextText := strings.Join(parts, "\n")

	answer, err := u.answerer.Answer(ctx, question, contextText)
	if err != nil {
		return "", &domain.AnswerError{DocumentID: documentID, Err: err}
	}

	if u.cache != nil {
		u.cache.Put(documentID, question, k, answer)
	}
	return answer, nil
}
