package index

import (
	"sync"
	"time"

	"docuquery/internal/model"
)

// Store owns the indexed representation of uploaded documents. Each entry is
// written once by the pipeline run that owns its document id; the map itself
// is safe for concurrent inserts and reads.
type Store struct {
	mu      sync.RWMutex
	entries map[string]model.IndexEntry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]model.IndexEntry)}
}

// Build splits rawText into sections, extracts entities over the whole text
// and stores the result, replacing any prior entry for the same document id.
// It never fails: empty text yields an entry with zero sections and entities.
func (s *Store) Build(documentID, rawText string) model.IndexSummary {
	entry := model.IndexEntry{
		DocumentID: documentID,
		Text:       rawText,
		Sections:   SplitSections(rawText),
		Entities:   ExtractEntities(rawText, nil),
		IndexedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.entries[documentID] = entry
	s.mu.Unlock()

	return model.IndexSummary{
		DocumentID: documentID,
		TotalChars: len(rawText),
		Sections:   len(entry.Sections),
		Entities:   len(entry.Entities),
	}
}

// Get returns the entry for documentID. A missing entry is reported by the
// second return value, not an error.
func (s *Store) Get(documentID string) (model.IndexEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[documentID]
	return entry, ok
}
