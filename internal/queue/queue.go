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

package queue

import (
	"context"
	"sync"
	"time"

	"github.com/reika0717/sparql-proxy/internal/apierr"
	"github.com/reika0717/sparql-proxy/internal/metrics"
)

// QueueState is the broadcast snapshot emitted on every transition:
// waiting/running/recent jobs as result-free summaries.
type QueueState struct {
	Waiting []JobSummary
	Running []JobSummary
	Recent  []JobSummary
}

// Queue is a bounded FIFO of Jobs. All mutable state (the waiting slice,
// the running set, the recent history, the token index, the subscriber
// set) is guarded by mu so every externally observed operation appears
// atomic.
type Queue struct {
	maxConcurrency int
	maxWaiting     int

	mu          sync.Mutex
	waiting     []*Job
	running     map[string]*Job
	recent      []*Job
	tokenLatest map[string]*Job
	subscribers map[chan QueueState]struct{}

	sweepStop chan struct{}
	sweepDone chan struct{}
}

// New builds a Queue with the given capacities and starts its background
// sweeper. The sweeper runs every 5s and never blocks enqueues.
func New(maxConcurrency, maxWaiting int, keepOldJobsFor time.Duration) *Queue {
	q := &Queue{
		maxConcurrency: maxConcurrency,
		maxWaiting:     maxWaiting,
		running:        make(map[string]*Job),
		tokenLatest:    make(map[string]*Job),
		subscribers:    make(map[chan QueueState]struct{}),
		sweepStop:      make(chan struct{}),
		sweepDone:      make(chan struct{}),
	}
	go q.sweepLoop(keepOldJobsFor)
	return q
}

// Close stops the background sweeper. Running jobs are left to finish on
// their own; Close does not cancel them.
func (q *Queue) Close() {
	close(q.sweepStop)
	<-q.sweepDone
}

func (q *Queue) sweepLoop(keepOldJobsFor time.Duration) {
	defer close(q.sweepDone)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			q.SweepOldItems(time.Now().Add(-keepOldJobsFor))
		case <-q.sweepStop:
			return
		}
	}
}

// Enqueue admits job to the waiting list and blocks until it reaches a
// terminal state, returning its Result or the *apierr.Error it finished
// with. It fails immediately with QueueFull if the waiting list is
// already at capacity.
func (q *Queue) Enqueue(ctx context.Context, job *Job) (*Result, error) {
	q.mu.Lock()
	if len(q.waiting) >= q.maxWaiting {
		q.mu.Unlock()
		return nil, apierr.QueueFull()
	}
	q.waiting = append(q.waiting, job)
	if job.Token != "" {
		q.tokenLatest[job.Token] = job
	}
	q.updateGaugesLocked()
	q.mu.Unlock()

	q.broadcastState()
	q.tryStartNext()

	<-job.Done()
	result, apiErr := job.Outcome()
	if apiErr != nil {
		return nil, apiErr
	}
	return result, nil
}

// tryStartNext admits as many waiting jobs as there are free running
// slots, preserving FIFO order.
func (q *Queue) tryStartNext() {
	for {
		q.mu.Lock()
		if len(q.running) >= q.maxConcurrency || len(q.waiting) == 0 {
			q.mu.Unlock()
			return
		}
		job := q.waiting[0]
		q.waiting = q.waiting[1:]
		q.running[job.ID] = job
		q.updateGaugesLocked()
		q.mu.Unlock()

		q.broadcastState()

		go func(j *Job) {
			start := time.Now()
			j.run(context.Background())
			metrics.JobDurationSeconds.WithLabelValues(j.Summary().State.String()).Observe(time.Since(start).Seconds())
			q.onJobDone(j)
		}(job)
	}
}

func (q *Queue) onJobDone(job *Job) {
	q.mu.Lock()
	delete(q.running, job.ID)
	q.recent = append(q.recent, job)
	q.updateGaugesLocked()
	q.mu.Unlock()

	q.broadcastState()
	q.tryStartNext()
}

// Cancel marks the waiting or running job identified by id as cancelled,
// returning whether a transition actually occurred.
func (q *Queue) Cancel(id string) bool {
	q.mu.Lock()
	for i, j := range q.waiting {
		if j.ID == id {
			q.waiting = append(q.waiting[:i:i], q.waiting[i+1:]...)
			q.updateGaugesLocked()
			q.mu.Unlock()

			ok := j.Cancel()

			q.mu.Lock()
			q.recent = append(q.recent, j)
			q.mu.Unlock()
			q.broadcastState()
			return ok
		}
	}
	if j, found := q.running[id]; found {
		q.mu.Unlock()
		ok := j.Cancel()
		q.broadcastState()
		return ok
	}
	q.mu.Unlock()
	return false
}

// JobStatus returns the most recently enqueued job for token, if any is
// still tracked.
func (q *Queue) JobStatus(token string) (JobSummary, bool) {
	q.mu.Lock()
	job, ok := q.tokenLatest[token]
	q.mu.Unlock()
	if !ok {
		return JobSummary{}, false
	}
	return job.Summary(), true
}

// State returns a value-copy snapshot of the queue's current contents.
func (q *Queue) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stateLocked()
}

func (q *Queue) stateLocked() QueueState {
	return QueueState{
		Waiting: summaries(q.waiting),
		Running: summariesFromMap(q.running),
		Recent:  summaries(q.recent),
	}
}

// SweepOldItems drops terminal jobs from recent whose DoneAt predates
// threshold, also releasing their token-index entry if it still points at
// the swept job.
func (q *Queue) SweepOldItems(threshold time.Time) {
	q.mu.Lock()
	kept := q.recent[:0:0]
	for _, j := range q.recent {
		summary := j.Summary()
		if summary.DoneAt.Before(threshold) {
			if q.tokenLatest[j.Token] == j {
				delete(q.tokenLatest, j.Token)
			}
			continue
		}
		kept = append(kept, j)
	}
	q.recent = kept
	q.mu.Unlock()
	q.broadcastState()
}

// Subscribe registers a channel that receives a QueueState snapshot after
// every transition. The returned func unregisters it; callers must call it
// to avoid leaking the channel from the subscriber set.
func (q *Queue) Subscribe() (<-chan QueueState, func()) {
	ch := make(chan QueueState, 1)
	q.mu.Lock()
	q.subscribers[ch] = struct{}{}
	snapshot := q.stateLocked()
	q.mu.Unlock()

	select {
	case ch <- snapshot:
	default:
	}

	return ch, func() {
		q.mu.Lock()
		delete(q.subscribers, ch)
		q.mu.Unlock()
	}
}

func (q *Queue) broadcastState() {
	q.mu.Lock()
	snapshot := q.stateLocked()
	subs := make([]chan QueueState, 0, len(q.subscribers))
	for ch := range q.subscribers {
		subs = append(subs, ch)
	}
	q.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
			// Slow subscriber: drop its stale pending snapshot and replace
			// it with the current one instead of blocking the dispatcher.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

func (q *Queue) updateGaugesLocked() {
	metrics.QueueWaiting.Set(float64(len(q.waiting)))
	metrics.QueueRunning.Set(float64(len(q.running)))
}

func summaries(jobs []*Job) []JobSummary {
	out := make([]JobSummary, len(jobs))
	for i, j := range jobs {
		out[i] = j.Summary()
	}
	return out
}

func summariesFromMap(jobs map[string]*Job) []JobSummary {
	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Summary())
	}
	return out
}
