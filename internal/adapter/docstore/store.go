// Package docstore holds the process-wide registry of ingested documents.
// Documents are immutable once published, so readers holding a superseded
// snapshot can keep using it after a re-ingest replaces the entry.
package docstore

import (
	"fmt"
	"sync"

	"mindverse/internal/adapter/vectorindex"
	"mindverse/internal/domain"
)

// Document aggregates everything retrievable for one uploaded file: its
// ordered chunk sequence, the vector index over those chunks, and the path
// the source file was saved to. Chunks and Index have matching cardinality.
type Document struct {
	ID         string
	Chunks     []domain.Chunk
	Index      *vectorindex.Flat
	SourcePath string
}

// Store maps document IDs (upload filenames) to published Documents.
// Put, Get and Remove are linearizable per key.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func New() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Put publishes a document, unconditionally replacing any prior entry under
// the same ID (last write wins). It rejects a document whose chunk count and
// index size disagree, so no reader ever observes mismatched cardinality.
func (s *Store) Put(doc *Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document id must not be empty: %w", domain.ErrInvalidConfiguration)
	}
	if doc.Index == nil {
		return fmt.Errorf("document %q has no index: %w", doc.ID, domain.ErrInvalidConfiguration)
	}
	if len(doc.Chunks) != doc.Index.Size() {
		return fmt.Errorf("document %q has %d chunks but index size %d: %w",
			doc.ID, len(doc.Chunks), doc.Index.Size(), domain.ErrInvalidConfiguration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

// Get returns the published document for id, or domain.ErrDocumentNotFound.
func (s *Store) Get(id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, domain.ErrDocumentNotFound)
	}
	return doc, nil
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// Len returns the number of published documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
