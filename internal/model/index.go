package model

import "time"

const (
	EntityTypePerson = "PERSON"
	EntityTypeDate   = "DATE"
	EntityTypeNumber = "NUMBER"
)

// Section is a contiguous span of the document text. The boundary line is the
// title; Content holds the lines that follow it, up to the next boundary.
type Section struct {
	Title     string `json:"title"`
	StartLine int    `json:"start_line"`
	Content   string `json:"content"`
}

// Entity is a detected named item. Count is the occurrence count of Text in
// the full document text.
type Entity struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// IndexEntry is the indexed representation of one document. Never mutated
// after creation; re-indexing the same document id replaces the entry.
type IndexEntry struct {
	DocumentID string    `json:"document_id"`
	Text       string    `json:"-"`
	Sections   []Section `json:"sections"`
	Entities   []Entity  `json:"entities"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// IndexSummary reports what an index build found. Used for logging only.
type IndexSummary struct {
	DocumentID string `json:"document_id"`
	TotalChars int    `json:"total_chars"`
	Sections   int    `json:"sections_found"`
	Entities   int    `json:"entities_found"`
}

// SearchResult is one qualifying sentence plus its context window.
type SearchResult struct {
	Text           string  `json:"text"`
	MatchStrength  int     `json:"match_strength"`
	RelevanceScore float64 `json:"relevance_score"`
}
