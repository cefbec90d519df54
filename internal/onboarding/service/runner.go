package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"sst_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// CompleteFunc resolves a pending diagnosis.
type CompleteFunc func(ctx context.Context, sessionID uuid.UUID) error

var errRunnerUnbound = errors.New("diagnosis runner has no completer")

// InProcessRunner resolves diagnoses on a timer inside the API process.
type InProcessRunner struct {
	delay    time.Duration
	log      *logger.Logger
	complete CompleteFunc
	wg       sync.WaitGroup
}

// NewInProcessRunner creates a runner that waits delay before resolving.
func NewInProcessRunner(delay time.Duration, log *logger.Logger) *InProcessRunner {
	return &InProcessRunner{delay: delay, log: log}
}

// Bind sets the completion callback, normally Service.CompleteDiagnosis.
func (r *InProcessRunner) Bind(fn CompleteFunc) {
	r.complete = fn
}

// Schedule implements DiagnosisRunner.
func (r *InProcessRunner) Schedule(ctx context.Context, sessionID uuid.UUID) error {
	if r.complete == nil {
		return errRunnerUnbound
	}
	detached := context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if r.delay > 0 {
			timer := time.NewTimer(r.delay)
			defer timer.Stop()
			<-timer.C
		}
		if err := r.complete(detached, sessionID); err != nil {
			r.log.Error("diagnosis completion failed", "sessionId", sessionID, "error", err)
		}
	}()
	return nil
}

// Wait blocks until every scheduled diagnosis has been resolved.
func (r *InProcessRunner) Wait() {
	r.wg.Wait()
}
