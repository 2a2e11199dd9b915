package job

import (
	"sync"
	"time"

	"docuquery/internal/model"
)

// Tracker records the lifecycle of pipeline jobs. Transitions are
// one-directional: pending -> processing -> completed, with failed reachable
// from pending or processing. Terminal jobs never change again, progress
// never decreases, and jobs are retained for the process lifetime.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

func NewTracker() *Tracker {
	return &Tracker{jobs: make(map[string]*model.Job)}
}

// Register creates a pending job with zero progress.
func (t *Tracker) Register(taskID, documentID, documentName string) model.Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	j := &model.Job{
		TaskID:       taskID,
		DocumentID:   documentID,
		DocumentName: documentName,
		Status:       model.JobStatusPending,
		Progress:     0,
		CreatedAt:    time.Now().UTC(),
	}
	t.jobs[taskID] = j
	return *j
}

// Start moves a pending job to processing.
func (t *Tracker) Start(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[taskID]
	if !ok || j.Status != model.JobStatusPending {
		return
	}
	j.Status = model.JobStatusProcessing
}

// SetProgress advances progress to the given checkpoint. Values below the
// current progress and updates to terminal jobs are ignored.
func (t *Tracker) SetProgress(taskID string, progress int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[taskID]
	if !ok || isTerminal(j.Status) {
		return
	}
	if progress > 100 {
		progress = 100
	}
	if progress > j.Progress {
		j.Progress = progress
	}
}

// Complete marks a processing job as completed and stamps completed_at.
func (t *Tracker) Complete(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[taskID]
	if !ok || isTerminal(j.Status) {
		return
	}
	now := time.Now().UTC()
	j.Status = model.JobStatusCompleted
	j.CompletedAt = &now
}

// Fail marks a job as failed with a human-readable message. Reachable from
// pending or processing only.
func (t *Tracker) Fail(taskID, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[taskID]
	if !ok || isTerminal(j.Status) {
		return
	}
	now := time.Now().UTC()
	j.Status = model.JobStatusFailed
	j.Error = message
	j.CompletedAt = &now
}

// Get returns a snapshot of the job. Snapshots are copies; callers never see
// a partially updated record.
func (t *Tracker) Get(taskID string) (model.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	j, ok := t.jobs[taskID]
	if !ok {
		return model.Job{}, false
	}
	return *j, true
}

func isTerminal(status model.JobStatus) bool {
	return status == model.JobStatusCompleted || status == model.JobStatusFailed
}
