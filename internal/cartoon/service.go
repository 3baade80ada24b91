// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/happydog/core/internal/notify"
	"github.com/happydog/core/internal/objectstore"
	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/social"
	"github.com/happydog/core/pkg/clock"
)

// Service implements the Job Orchestrator (spec §4.8).
type Service struct {
	jobs      *Store
	objects   *objectstore.Store
	social    *social.Service
	notifier  *notify.Notifier
	analyzer  Analyzer
	generator Generator
	breaker   *CircuitBreaker
	clock     clock.Clock
	logger    *slog.Logger

	queue          chan string
	enqueueTimeout time.Duration
	pool           *semaphore.Weighted
	inFlight       errgroup.Group
}

/*
NewService constructs a [Service] and starts a single dispatcher goroutine
draining its submission queue.

The queue is a buffered channel of depth queueDepth, the bounded FIFO
submission queue spec §5 calls for; enqueue blocks a submitting caller up
to enqueueTimeout for room in it. The dispatcher pulls jobs off that
queue in order and acquires pool, a golang.org/x/sync/semaphore.Weighted
sized to poolSize, before spawning each job's detached pipeline goroutine
— the semaphore, not the queue, is what caps concurrent third-party
generation calls. The dispatcher and each spawned goroutine are tracked in inFlight (a plain
golang.org/x/sync/errgroup.Group, deliberately not WithContext: one job's
failure must never cancel its siblings) purely so [Service.Shutdown] can
wait for every queued-and-running job to finish draining before the
process exits.
*/
func NewService(
	jobs *Store,
	objects *objectstore.Store,
	socialService *social.Service,
	notifier *notify.Notifier,
	analyzer Analyzer,
	generator Generator,
	breaker *CircuitBreaker,
	c clock.Clock,
	logger *slog.Logger,
	poolSize, queueDepth int,
	enqueueTimeout time.Duration,
) *Service {
	s := &Service{
		jobs:           jobs,
		objects:        objects,
		social:         socialService,
		notifier:       notifier,
		analyzer:       analyzer,
		generator:      generator,
		breaker:        breaker,
		clock:          c,
		logger:         logger,
		queue:          make(chan string, queueDepth),
		enqueueTimeout: enqueueTimeout,
		pool:           semaphore.NewWeighted(int64(poolSize)),
	}

	s.inFlight.Go(func() error {
		s.dispatch()
		return nil
	})

	return s
}

// dispatch pulls job ids off the submission queue in FIFO order for the
// lifetime of the process, acquiring a pool slot before handing each one
// to its own detached goroutine. Each job's pipeline runs with a fresh
// background context (spec §4.8's "workers run independently of the
// request context" requirement), so tearing down the HTTP request that
// submitted it never cancels it.
func (s *Service) dispatch() {
	for jobID := range s.queue {
		if err := s.pool.Acquire(context.Background(), 1); err != nil {
			return
		}

		jobID := jobID
		s.inFlight.Go(func() error {
			defer s.pool.Release(1)
			s.runJob(context.Background(), jobID)
			return nil
		})
	}
}

// enqueue hands jobID to the worker pool, blocking up to s.enqueueTimeout
// for a free queue slot before failing Overloaded (spec §5).
func (s *Service) enqueue(jobID string) error {
	timer := time.NewTimer(s.enqueueTimeout)
	defer timer.Stop()

	select {
	case s.queue <- jobID:
		return nil
	case <-timer.C:
		return apperr.Overloaded("cartoon generation queue is full, try again shortly")
	}
}

// Shutdown closes the submission queue and waits for every queued and
// in-flight job to finish, up to ctx's deadline. New submissions after
// Shutdown has been called will panic on a closed channel send, so
// callers must stop routing traffic to Submit first.
func (s *Service) Shutdown(ctx context.Context) error {
	close(s.queue)

	done := make(chan struct{})
	go func() {
		_ = s.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
