package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docuquery/internal/docstore"
	"docuquery/internal/job"
	"docuquery/internal/model"
	"docuquery/internal/pipeline"
	"docuquery/internal/retrieval"
)

// DocumentService accepts documents, schedules their processing pipeline and
// answers status, summary and search lookups.
type DocumentService struct {
	docs      *docstore.Store
	jobs      *job.Tracker
	retrieval *retrieval.Engine
	runner    *pipeline.Runner
}

func NewDocumentService(
	docs *docstore.Store,
	jobs *job.Tracker,
	retrievalEngine *retrieval.Engine,
	runner *pipeline.Runner,
) *DocumentService {
	return &DocumentService{
		docs:      docs,
		jobs:      jobs,
		retrieval: retrievalEngine,
		runner:    runner,
	}
}

type SubmitInput struct {
	Name    string
	Content string
}

type SubmitResult struct {
	TaskID     string          `json:"task_id"`
	DocumentID string          `json:"document_id"`
	Name       string          `json:"document_name"`
	Status     model.JobStatus `json:"status"`
}

// Submit registers the document and its job, then hands the pipeline run to
// the worker pool. It returns as soon as the run is queued; callers poll the
// task id for progress.
func (s *DocumentService) Submit(input SubmitInput) (*SubmitResult, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Untitled"
	}

	documentID := newDocumentID(name)
	taskID := uuid.NewString()

	s.docs.Put(model.Document{
		ID:        documentID,
		Name:      name,
		Status:    model.DocumentStatusUploaded,
		RawText:   content,
		CreatedAt: time.Now().UTC(),
	})
	s.jobs.Register(taskID, documentID, name)

	if err := s.runner.Submit(taskID, documentID, content); err != nil {
		s.jobs.Fail(taskID, "schedule pipeline failed: "+err.Error())
		s.docs.SetStatus(documentID, model.DocumentStatusError)
		return nil, fmt.Errorf("schedule pipeline failed: %w", err)
	}

	return &SubmitResult{
		TaskID:     taskID,
		DocumentID: documentID,
		Name:       name,
		Status:     model.JobStatusPending,
	}, nil
}

// GetTask returns the job snapshot for a task id.
func (s *DocumentService) GetTask(taskID string) (model.Job, error) {
	if taskID == "" {
		return model.Job{}, ErrInvalidInput
	}
	snapshot, ok := s.jobs.Get(taskID)
	if !ok {
		return model.Job{}, ErrTaskNotFound
	}
	return snapshot, nil
}

func (s *DocumentService) GetDocument(documentID string) (model.Document, error) {
	if documentID == "" {
		return model.Document{}, ErrInvalidInput
	}
	doc, ok := s.docs.Get(documentID)
	if !ok {
		return model.Document{}, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *DocumentService) ListDocuments() []model.Document {
	return s.docs.List()
}

// Summary returns the retrieval engine overview for a known document. The
// engine's own soft "not indexed" sentinel passes through for documents whose
// pipeline has not built the index yet.
func (s *DocumentService) Summary(documentID string) (string, error) {
	if _, ok := s.docs.Get(documentID); !ok {
		return "", ErrDocumentNotFound
	}
	return s.retrieval.Summarize(documentID), nil
}

// Search runs a keyword query against a known document. An unindexed
// document yields an empty result list, not an error.
func (s *DocumentService) Search(documentID, query string, maxResults int) ([]model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	if _, ok := s.docs.Get(documentID); !ok {
		return nil, ErrDocumentNotFound
	}
	return s.retrieval.Search(documentID, query, maxResults), nil
}

// newDocumentID derives a readable, unique id from the document name so task
// ids and document ids are easy to tell apart in logs.
func newDocumentID(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	slug := b.String()
	if slug == "" {
		slug = "document"
	}
	return fmt.Sprintf("doc_%s_%s", slug, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
