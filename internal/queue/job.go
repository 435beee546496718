// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package queue implements the bounded job queue: a FIFO of Jobs admitted
// up to maxWaiting, run up to maxConcurrency at a time, each progressing
// through the waiting -> running -> terminal state machine exactly once.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/reika0717/sparql-proxy/internal/apierr"
	"github.com/reika0717/sparql-proxy/internal/backend"
	"github.com/reika0717/sparql-proxy/internal/metrics"
)

// State is one point in a Job's state machine. States only ever advance
// forward; Terminal reports whether no further transition is possible.
type State int

const (
	StateWaiting State = iota
	StateRunning
	StateSuccess
	StateError
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is one of success/error/cancelled.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateError, StateCancelled:
		return true
	default:
		return false
	}
}

// Result is a job's successful outcome: the bytes to send back and the
// content type to send them with.
type Result struct {
	ContentType string
	Body        []byte
}

// Executor performs the actual work of a job (normalizer output is already
// resolved by the caller; this is the cache-miss path: chunk execution or a
// verbatim backend call). It must honour ctx cancellation promptly.
type Executor func(ctx context.Context) (*Result, error)

// JobSummary is the value-copy, result-body-free view of a Job used in
// QueueState snapshots and /jobs/{token} responses.
type JobSummary struct {
	ID        string
	Token     string
	IP        string
	State     State
	CreatedAt time.Time
	StartedAt time.Time
	DoneAt    time.Time
	Error     *apierr.Error
}

// Job is one query attempt: run once, cancel idempotently, inspect status
// from any goroutine.
type Job struct {
	ID        string
	Token     string
	IP        string
	TimeoutMs int64
	CreatedAt time.Time

	execute Executor

	mu        sync.Mutex
	state     State
	result    *Result
	apiErr    *apierr.Error
	startedAt time.Time
	doneAt    time.Time
	cancelFn  context.CancelFunc
	done      chan struct{}
}

// NewJob constructs a waiting Job. execute is invoked exactly once, by
// run, once the queue admits the job.
func NewJob(id, token, ip string, timeoutMs int64, execute Executor) *Job {
	return &Job{
		ID:        id,
		Token:     token,
		IP:        ip,
		TimeoutMs: timeoutMs,
		CreatedAt: time.Now(),
		execute:   execute,
		state:     StateWaiting,
		done:      make(chan struct{}),
	}
}

// Done returns a channel that closes once the job reaches a terminal state.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// run transitions the job to running, invokes its executor outside any
// lock (every suspension point in the executor happens with no lock held),
// and records the terminal outcome. Invoked exactly once by the queue
// worker goroutine that dequeued this job.
func (j *Job) run(parent context.Context) {
	j.mu.Lock()
	if j.state.Terminal() {
		// Cancelled while still waiting to be picked up; nothing to run.
		j.mu.Unlock()
		return
	}
	j.state = StateRunning
	j.startedAt = time.Now()

	var ctx context.Context
	var cancel context.CancelFunc
	if j.TimeoutMs > 0 {
		ctx, cancel = context.WithTimeout(parent, time.Duration(j.TimeoutMs)*time.Millisecond)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	j.cancelFn = cancel
	j.mu.Unlock()

	result, err := j.execute(ctx)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state.Terminal() {
		// Cancel() already finished this job while execute was in flight;
		// the backend call may still complete, but its result is discarded.
		return
	}

	if err != nil {
		j.finishLocked(outcomeForError(ctx, err))
		return
	}
	j.finishLocked(StateSuccess, result, nil)
}

// outcomeForError classifies an executor error into the terminal state and
// *apierr.Error the job surfaces. Context state wins over the error value
// so a timeout or cancellation mid-call is never misreported as a backend
// failure.
func outcomeForError(ctx context.Context, err error) (State, *Result, *apierr.Error) {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return StateError, nil, apierr.Timeout()
	case errors.Is(ctx.Err(), context.Canceled):
		return StateCancelled, nil, apierr.Cancelled()
	default:
		var se *backend.StatusError
		if errors.As(err, &se) {
			metrics.BackendErrorsTotal.Inc()
			return StateError, nil, apierr.Backend(se.Status, se.Body)
		}
		return StateError, nil, apierr.Internal(err.Error())
	}
}

// finishLocked must be called with mu held. It is a no-op if the job is
// already terminal, so a racing Cancel() and run() completion never
// double-transition or double-close done.
func (j *Job) finishLocked(state State, result *Result, apiErr *apierr.Error) bool {
	if j.state.Terminal() {
		return false
	}
	j.state = state
	j.result = result
	j.apiErr = apiErr
	j.doneAt = time.Now()
	close(j.done)
	return true
}

// Cancel marks the job cancelled, idempotently. For a running job it also
// aborts the in-flight executor's context. Returns whether this call
// actually performed the transition.
func (j *Job) Cancel() bool {
	j.mu.Lock()
	cancelFn := j.cancelFn
	ok := j.finishLocked(StateCancelled, nil, apierr.Cancelled())
	j.mu.Unlock()
	if cancelFn != nil {
		cancelFn()
	}
	return ok
}

// Summary returns a value-copy snapshot safe to read from any goroutine.
func (j *Job) Summary() JobSummary {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSummary{
		ID:        j.ID,
		Token:     j.Token,
		IP:        j.IP,
		State:     j.state,
		CreatedAt: j.CreatedAt,
		StartedAt: j.startedAt,
		DoneAt:    j.doneAt,
		Error:     j.apiErr,
	}
}

// Outcome returns the job's terminal result, if any. Only meaningful after
// Done() has closed.
func (j *Job) Outcome() (*Result, *apierr.Error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.apiErr
}
