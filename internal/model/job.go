package model

import "time"

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job records the lifecycle of one pipeline run. Progress is monotonically
// non-decreasing and reaches 100 only when the job completes.
type Job struct {
	TaskID       string     `json:"task_id"`
	DocumentID   string     `json:"document_id"`
	DocumentName string     `json:"document_name"`
	Status       JobStatus  `json:"status"`
	Progress     int        `json:"progress"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
