// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sgpool runs tasks concurrently on bounded pools and hands their
// results back to the goroutine that launched them.
//
// A [Job] is single-threaded: [Gather.Scatter], [Job.GatherOne] and
// [Job.GatherAll] must all be called from the same goroutine. Tasks run in
// their own goroutines, but gather functions only ever run on the job's
// goroutine, so they may update local state without locking.
package sgpool

import (
	"context"
	"fmt"
	"sync"

	"github.com/gammazero/deque"
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrTaskPanic is passed to the gather function of a task that panicked.
const ErrTaskPanic = constError("task panicked")

// A TaskFunc runs in its own goroutine and must be thread-safe.
type TaskFunc[T any] = func(context.Context) (T, error)

// A GatherFunc receives the outcome of a TaskFunc on the job's goroutine. A
// non-nil return value is passed back to the caller of the gathering method.
type GatherFunc[T any] = func(context.Context, T, error) error

type boundGatherFunc = func(ctx context.Context) error

// Job tracks the tasks launched into its pools.
type Job struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	mu        sync.Mutex
	completed deque.Deque[boundGatherFunc]
	ready     chan struct{}

	// Only touched by the job's goroutine.
	inFlight int
	closed   bool
}

// NewJob creates a job whose tasks receive a context derived from ctx. Each
// call should be followed by a deferred call to [Job.CancelAndWait].
func NewJob(ctx context.Context) *Job {
	ctx, cancel := context.WithCancel(ctx)
	return &Job{
		ctx:        ctx,
		cancelFunc: cancel,
		ready:      make(chan struct{}, 1),
	}
}

// Cancel cancels the context passed to the job's tasks.
func (j *Job) Cancel() {
	j.cancelFunc()
}

// CancelAndWait cancels the job and waits for all of its tasks to return.
// Results not yet gathered are dropped.
func (j *Job) CancelAndWait() {
	j.cancelFunc()
	j.wg.Wait()
}

// InFlight returns the number of launched tasks that have not been gathered.
func (j *Job) InFlight() int {
	return j.inFlight
}

// GatherOne waits for one task to complete and runs its gather function.
// Returns false without blocking if no tasks are in flight.
func (j *Job) GatherOne(ctx context.Context) (bool, error) {
	if j.inFlight == 0 {
		return false, nil
	}
	for {
		j.mu.Lock()
		if j.completed.Len() > 0 {
			gather := j.completed.PopFront()
			j.mu.Unlock()
			return true, gather(ctx)
		}
		j.mu.Unlock()
		select {
		case <-j.ready:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// GatherAll gathers until no tasks remain in flight or a gather function
// returns an error. Tasks still in flight after an error can be gathered by
// calling GatherAll again.
func (j *Job) GatherAll(ctx context.Context) error {
	for {
		ok, err := j.GatherOne(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// CloseAndGatherAll prevents further scattering into the job and gathers all
// remaining tasks.
func (j *Job) CloseAndGatherAll(ctx context.Context) error {
	j.closed = true
	return j.GatherAll(ctx)
}

func (j *Job) post(gather boundGatherFunc) {
	j.mu.Lock()
	j.completed.PushBack(gather)
	j.mu.Unlock()
	select {
	case j.ready <- struct{}{}:
	default:
	}
}

// A TaskPool limits how many of a job's tasks run at once.
type TaskPool struct {
	job      *Job
	limit    int
	inFlight int
}

// NewTaskPool creates a pool bound to job. A negative limit means no limit.
func NewTaskPool(job *Job, limit int) *TaskPool {
	if job == nil {
		panic("job must be non-nil")
	}
	if limit == 0 {
		panic("pool limit must be non-zero")
	}
	return &TaskPool{job: job, limit: limit}
}

func (p *TaskPool) full() bool {
	return p.limit >= 0 && p.inFlight >= p.limit
}

// Gather binds a GatherFunc to the tasks scattered through it.
type Gather[T any] struct {
	gatherFunc GatherFunc[T]
}

func NewGather[T any](gatherFunc GatherFunc[T]) *Gather[T] {
	if gatherFunc == nil {
		panic("gather function must be non-nil")
	}
	return &Gather[T]{gatherFunc: gatherFunc}
}

// Scatter launches taskFunc in a new goroutine once pool has a free slot,
// gathering completed tasks while it waits. It returns a non-nil error, and
// does not launch the task, if ctx or the job is canceled or if a gather
// function run while waiting returns an error.
func (g *Gather[T]) Scatter(ctx context.Context, pool *TaskPool, taskFunc TaskFunc[T]) error {
	if taskFunc == nil {
		panic("task function must be non-nil")
	}
	j := pool.job
	if j.closed {
		panic("Scatter called on a closed job")
	}
	for pool.full() {
		if _, err := j.GatherOne(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := j.ctx.Err(); err != nil {
		return err
	}

	j.inFlight++
	pool.inFlight++
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		var result T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
			}
			j.post(func(ctx context.Context) error {
				j.inFlight--
				pool.inFlight--
				return g.gatherFunc(ctx, result, err)
			})
		}()
		result, err = taskFunc(j.ctx)
	}()
	return nil
}
