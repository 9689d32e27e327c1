package tasks

import (
	"context"
	"sync"
	"time"
)

// Runner is one periodic unit of work. The pipelines implement it.
type Runner interface {
	Run(ctx context.Context) error
}

// Task wraps a runner with scheduling state and bookkeeping. All
// mutable fields are guarded by mu; the dispatcher and the executor
// run on different goroutines.
type Task struct {
	Name     string
	Interval time.Duration
	runner   Runner

	mu        sync.Mutex
	pending   bool
	nextRunAt time.Time
	lastRunAt time.Time
	lastError string
	runs      int
}

func NewTask(name string, interval time.Duration, runner Runner) *Task {
	return &Task{
		Name:     name,
		Interval: interval,
		runner:   runner,
	}
}

// due reports whether the task should be enqueued now. A task already
// queued or running is never enqueued twice.
func (t *Task) due(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending {
		return false
	}
	if t.nextRunAt.After(now) {
		return false
	}
	t.pending = true
	return true
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false
	t.lastRunAt = time.Now()
	t.nextRunAt = t.lastRunAt.Add(t.Interval)
	t.runs++
	if err != nil {
		t.lastError = err.Error()
	} else {
		t.lastError = ""
	}
}

// Status is a point-in-time snapshot of a task for the status API.
type Status struct {
	Name      string    `json:"name"`
	Runs      int       `json:"runs"`
	LastRunAt time.Time `json:"last_run_at"`
	NextRunAt time.Time `json:"next_run_at"`
	LastError string    `json:"last_error,omitempty"`
}

func (t *Task) status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		Name:      t.Name,
		Runs:      t.runs,
		LastRunAt: t.lastRunAt,
		NextRunAt: t.nextRunAt,
		LastError: t.lastError,
	}
}
