package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"docuquery/internal/docstore"
	"docuquery/internal/index"
	"docuquery/internal/job"
	"docuquery/internal/model"
)

// CompletionService is the external text-completion collaborator backing each
// stage. Failures are treated as stage failures, never retried here.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	progressStarted    = 10
	progressIndexBuilt = 20

	ingestionPreviewChars = 2000
	defaultStageTimeout   = 90 * time.Second
)

type stage struct {
	name       string
	status     model.DocumentStatus
	checkpoint int
	prompt     func(rawText string) string
}

// The fixed stage sequence. Stages do not pass structured output to each
// other; each sends a textual instruction to the completion service.
var stages = []stage{
	{
		name:       "ingestion",
		status:     model.DocumentStatusIngested,
		checkpoint: 35,
		prompt: func(rawText string) string {
			return "Ingested document content:\n" + preview(rawText, ingestionPreviewChars)
		},
	},
	{
		name:       "segmentation",
		status:     model.DocumentStatusSegmented,
		checkpoint: 50,
		prompt: func(string) string {
			return "Segment the ingested document into chapters and sections with years, key events, and important figures"
		},
	},
	{
		name:       "summarization",
		status:     model.DocumentStatusSummarized,
		checkpoint: 65,
		prompt: func(string) string {
			return "Summarize each chapter with years, key events, and important figures"
		},
	},
	{
		name:       "indexing",
		status:     model.DocumentStatusIndexed,
		checkpoint: 100,
		prompt: func(string) string {
			return "Index the document for entities and themes for retrieval"
		},
	},
}

// Orchestrator runs the fixed stage sequence for one document, advancing the
// job tracker after every stage attempt. A stage failure is logged and
// swallowed; only an error escaping the stage loop fails the whole job.
type Orchestrator struct {
	index        *index.Store
	docs         *docstore.Store
	jobs         *job.Tracker
	llm          CompletionService
	stageTimeout time.Duration
}

func NewOrchestrator(
	indexStore *index.Store,
	docs *docstore.Store,
	jobs *job.Tracker,
	llm CompletionService,
	stageTimeout time.Duration,
) *Orchestrator {
	if stageTimeout <= 0 {
		stageTimeout = defaultStageTimeout
	}
	return &Orchestrator{
		index:        indexStore,
		docs:         docs,
		jobs:         jobs,
		llm:          llm,
		stageTimeout: stageTimeout,
	}
}

// Run executes the whole pipeline for one document. It is meant to be invoked
// fire-and-forget; the triggering request only guarantees the job record
// exists by the time it returns.
func (o *Orchestrator) Run(ctx context.Context, taskID, documentID, rawText string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Pipeline %s] failed: %v", taskID, r)
			o.jobs.Fail(taskID, fmt.Sprintf("pipeline failed: %v", r))
			o.docs.SetStatus(documentID, model.DocumentStatusError)
		}
	}()

	log.Printf("[Pipeline %s] starting processing for document %s", taskID, documentID)
	o.jobs.Start(taskID)
	o.jobs.SetProgress(taskID, progressStarted)

	summary := o.index.Build(documentID, rawText)
	log.Printf("[Pipeline %s] indexed %d sections, %d entities", taskID, summary.Sections, summary.Entities)
	o.jobs.SetProgress(taskID, progressIndexBuilt)

	for _, st := range stages {
		o.runStage(ctx, taskID, st, rawText)
		o.docs.SetStatus(documentID, st.status)
		o.jobs.SetProgress(taskID, st.checkpoint)
	}

	o.jobs.Complete(taskID)
	log.Printf("[Pipeline %s] processing completed", taskID)
}

// runStage attempts one stage under its own timeout. Errors (timeouts
// included) are logged and swallowed so the pipeline always proceeds.
func (o *Orchestrator) runStage(ctx context.Context, taskID string, st stage, rawText string) {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	if _, err := o.llm.Complete(stageCtx, st.prompt(rawText)); err != nil {
		log.Printf("[Pipeline %s] stage %s failed (continuing): %v", taskID, st.name, err)
		return
	}
	log.Printf("[Pipeline %s] stage %s complete", taskID, st.name)
}

func preview(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
