package docstore

import (
	"sort"
	"sync"

	"docuquery/internal/model"
)

// Store is the in-memory document registry. Documents are created on upload,
// their status is advanced by the owning pipeline run, and they live for the
// process lifetime.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*model.Document
}

func New() *Store {
	return &Store{docs: make(map[string]*model.Document)}
}

func (s *Store) Put(doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := doc
	s.docs[doc.ID] = &stored
}

func (s *Store) Get(documentID string) (model.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[documentID]
	if !ok {
		return model.Document{}, false
	}
	return *doc, true
}

// SetStatus advances the status label. Unknown ids are ignored.
func (s *Store) SetStatus(documentID string, status model.DocumentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[documentID]; ok {
		doc.Status = status
	}
}

// List returns all documents ordered by creation time, then id for stability.
func (s *Store) List() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, *doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs
}
