// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package job provides a fixed-capacity job queue drained by a pool of
// worker goroutines, used by the light baker to parallelise per-plane and
// per-fogmap-cell tracing. Each job carries a small inline payload so
// most jobs need no heap allocation beyond the closure's captured
// arguments.
//
// golang.org/x/sync's semaphore.Weighted bounds how many jobs are in
// flight at once; completion tracking is Go's own sync.WaitGroup, a
// counter incremented per submission and decremented in a deferred guard
// inside the worker.
package job

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Payload is the inline per-job data, sized to hold a small fixed struct.
// A job interprets the bytes as whatever struct it needs without a heap
// allocation.
type Payload [64]byte

// Context is passed to every running job. WorkerIndex identifies which
// worker goroutine is running the job and is used to select a conflict-free
// scratch arena (see package arena's GetTemp).
type Context struct {
	WorkerIndex int
	Payload     Payload
}

// Proc is the function a job runs. Jobs that need cooperative
// cancellation capture a shared flag and poll it (see bake.State.Cancel).
type Proc func(ctx Context)

type job struct {
	proc    Proc
	payload Payload
}

// Queue is a fixed-capacity, multi-producer job queue drained by N
// worker goroutines. Add is safe to call from any goroutine; jobs run in
// no particular order relative to each other.
type Queue struct {
	sem       *semaphore.Weighted
	jobs      chan job
	pending   sync.WaitGroup // one Add per submitted job, one Done per completed job.
	workerWG  sync.WaitGroup // tracks worker goroutine lifetimes for Close.
	ctx       context.Context
	cancel    context.CancelFunc
	completed atomic.Int64
	submitted atomic.Int64
}

// NewQueue starts workers goroutines draining a queue of the given
// capacity. capacity bounds how many jobs may be queued or running at
// once (a job's slot is released when it finishes); Add blocks (rather than silently dropping, unlike the mixer's
// audio ring) once that bound is reached, since job submission is not a
// real-time hot path.
func NewQueue(workers, capacity int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if capacity <= 0 {
		capacity = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		sem:    semaphore.NewWeighted(int64(capacity)),
		jobs:   make(chan job, capacity),
		ctx:    ctx,
		cancel: cancel,
	}
	q.workerWG.Add(workers)
	for w := 0; w < workers; w++ {
		workerIndex := w
		go func() {
			defer q.workerWG.Done()
			q.runWorker(workerIndex)
		}()
	}
	return q
}

func (q *Queue) runWorker(workerIndex int) {
	for j := range q.jobs {
		func() {
			defer q.pending.Done()
			defer q.completed.Add(1)
			defer q.sem.Release(1)
			j.proc(Context{WorkerIndex: workerIndex, Payload: j.payload})
		}()
	}
}

// Add enqueues a job, blocking until queue capacity is available. Add is
// a no-op once the queue's context has been cancelled (see Close).
func (q *Queue) Add(proc Proc, payload Payload) {
	if err := q.sem.Acquire(q.ctx, 1); err != nil {
		return // queue is shutting down.
	}
	q.submitted.Add(1)
	q.pending.Add(1)
	select {
	case q.jobs <- job{proc: proc, payload: payload}:
	case <-q.ctx.Done():
		q.sem.Release(1)
		q.pending.Done()
	}
}

// Wait blocks until every job added so far has completed.
func (q *Queue) Wait() { q.pending.Wait() }

// Completed returns the number of jobs that have finished running.
func (q *Queue) Completed() int64 { return q.completed.Load() }

// Submitted returns the number of jobs that have been added so far.
func (q *Queue) Submitted() int64 { return q.submitted.Load() }

// Close stops accepting new jobs and waits for workers to drain the
// channel and exit. Close does not cancel in-flight jobs; use a
// cooperative cancellation flag (see bake.State) for that.
func (q *Queue) Close() {
	close(q.jobs) // workers run every job still queued, then exit.
	q.cancel()
	q.workerWG.Wait()
}
