package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// pollInterval is how often the dispatcher checks for due tasks.
const pollInterval = time.Second

// tickTimeout caps a single execution. Generous because a tick may
// legitimately sleep through a rate limit backoff.
const tickTimeout = 30 * time.Minute

var _ SchedulerInterface = (*Scheduler)(nil)

// Scheduler runs registered tasks on their intervals through a single
// executor goroutine. Serial execution is the point: the pipelines
// share the dedup memory, baselines and publish gate, none of which
// are safe for concurrent ticks.
type Scheduler struct {
	tasks     []*Task
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan *Task
}

func NewScheduler(taskList ...*Task) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		tasks:     taskList,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan *Task, len(taskList)*2+1),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.executor()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		// Every task gets an immediate first run.
		s.dispatch(time.Now())

		for {
			select {
			case <-s.ctx.Done():
				return
			case now := <-ticker.C:
				s.dispatch(now)
			}
		}
	}()

	slog.Info("Scheduler started", "tasks", len(s.tasks))
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
	slog.Info("Scheduler stopped")
}

// Statuses reports the bookkeeping snapshot of every registered task.
func (s *Scheduler) Statuses() []Status {
	out := make([]Status, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.status())
	}
	return out
}

func (s *Scheduler) dispatch(now time.Time) {
	for _, task := range s.tasks {
		if !task.due(now) {
			continue
		}
		select {
		case s.taskQueue <- task:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executor() {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(task)
		case <-s.ctx.Done():
			return
		}
	}
}

// executeTask runs one tick. A panic is contained to the tick so a bad
// upstream payload cannot take the whole process down.
func (s *Scheduler) executeTask(task *Task) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Tick panicked", "task", task.Name, "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
		task.finish(err)
	}()

	taskCtx, cancel := context.WithTimeout(s.ctx, tickTimeout)
	defer cancel()

	started := time.Now()
	err = task.runner.Run(taskCtx)
	if err != nil {
		slog.Error("Tick failed", "task", task.Name, "duration", time.Since(started).String(), "error", err)
		return
	}
	slog.Debug("Tick completed", "task", task.Name, "duration", time.Since(started).String())
}
