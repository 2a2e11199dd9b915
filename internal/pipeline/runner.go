package pipeline

import (
	"context"

	"github.com/panjf2000/ants/v2"
)

const defaultWorkers = 4

// Runner schedules pipeline executions on a shared worker pool. Submit is
// fire-and-forget: it returns once the run is queued, and runs for different
// documents proceed concurrently.
type Runner struct {
	orchestrator *Orchestrator
	pool         *ants.Pool
}

func NewRunner(orchestrator *Orchestrator, workers int) (*Runner, error) {
	if workers < 1 {
		workers = defaultWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Runner{orchestrator: orchestrator, pool: pool}, nil
}

func (r *Runner) Submit(taskID, documentID, rawText string) error {
	return r.pool.Submit(func() {
		r.orchestrator.Run(context.Background(), taskID, documentID, rawText)
	})
}

func (r *Runner) Release() {
	r.pool.Release()
}
