package model

import "time"

type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusIngested   DocumentStatus = "ingested"
	DocumentStatusSegmented  DocumentStatus = "segmented"
	DocumentStatusSummarized DocumentStatus = "summarized"
	DocumentStatusIndexed    DocumentStatus = "indexed"
	DocumentStatusError      DocumentStatus = "error"
)

// Document is one uploaded artifact. RawText is immutable once set; Status is
// advanced only by the pipeline orchestrator.
type Document struct {
	ID        string         `json:"document_id"`
	Name      string         `json:"name"`
	Status    DocumentStatus `json:"status"`
	RawText   string         `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
}
