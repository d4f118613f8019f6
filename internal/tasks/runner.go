// Package tasks runs the application's slow provider calls off the calling
// goroutine, one at a time per kind. Starting a second route lookup while
// one is in flight fails fast instead of queueing.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tmalloy/wayfarer/pkg/logger"
	"github.com/tmalloy/wayfarer/pkg/prefixed_uuid"
)

// ErrInFlight is returned when a task of the same kind is already running.
var ErrInFlight = errors.New("a task of this kind is already running")

// Kind labels a class of background work; at most one task per kind runs
// at a time.
type Kind string

const (
	KindAuth  Kind = "auth"
	KindRoute Kind = "route"
	KindChat  Kind = "chat"
)

// Task is a handle to one running unit of work.
type Task struct {
	id     string
	kind   Kind
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// ID returns the task identifier.
func (t *Task) ID() string {
	return t.id
}

// Kind returns the task kind.
func (t *Task) Kind() Kind {
	return t.kind
}

// Done is closed when the task finishes, whether it succeeded, failed or
// was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's result error. Only meaningful after Done is
// closed.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Cancel asks the task to stop via its context. The task is finished only
// once Done closes.
func (t *Task) Cancel() {
	t.cancel()
}

// Runner launches tasks and enforces the one-per-kind rule.
type Runner struct {
	log logger.Logger

	mu      sync.Mutex
	running map[Kind]*Task
	wg      sync.WaitGroup
	closed  bool
}

// NewRunner creates a task runner.
func NewRunner(log logger.Logger) *Runner {
	if log == nil {
		panic("logger cannot be nil")
	}
	return &Runner{
		log:     log,
		running: make(map[Kind]*Task),
	}
}

// Go starts fn on a new goroutine under the given kind. It returns
// ErrInFlight if a task of that kind is still running, and an error after
// Shutdown has been called.
func (r *Runner) Go(ctx context.Context, kind Kind, fn func(ctx context.Context) error) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("runner is shut down")
	}
	if _, busy := r.running[kind]; busy {
		return nil, ErrInFlight
	}

	taskCtx, cancel := context.WithCancel(ctx)
	task := &Task{
		id:     prefixed_uuid.New("task").String(),
		kind:   kind,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.running[kind] = task
	r.wg.Add(1)

	r.log.Debug("Task started",
		logger.StringField("task_id", task.id),
		logger.StringField("kind", string(kind)))

	go func() {
		defer r.wg.Done()
		defer cancel()

		err := fn(taskCtx)

		task.mu.Lock()
		task.err = err
		task.mu.Unlock()

		r.mu.Lock()
		delete(r.running, kind)
		r.mu.Unlock()

		if err != nil {
			r.log.Debug("Task finished with error",
				logger.StringField("task_id", task.id),
				logger.ErrorField(err))
		} else {
			r.log.Debug("Task finished", logger.StringField("task_id", task.id))
		}
		close(task.done)
	}()

	return task, nil
}

// Running reports whether a task of the given kind is in flight.
func (r *Runner) Running(kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.running[kind]
	return busy
}

// Shutdown cancels every running task and waits for them all to finish. No
// new tasks can start afterwards.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	r.closed = true
	for _, task := range r.running {
		task.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
}
