package scheduler

import (
	"context"

	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// DiagnosisCompleter resolves a session's pending diagnosis.
type DiagnosisCompleter interface {
	CompleteDiagnosis(ctx context.Context, sessionID uuid.UUID) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	completer DiagnosisCompleter
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, completer DiagnosisCompleter, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		completer: completer,
		log:       log,
	}
	w.mux.HandleFunc(TaskCompleteDiagnosis, w.handleCompleteDiagnosis)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleCompleteDiagnosis(ctx context.Context, task *asynq.Task) error {
	sessionID, err := ParseCompleteDiagnosisPayload(task)
	if err != nil {
		// A malformed payload will never succeed.
		w.log.Error("dropping diagnosis task", "error", err)
		return asynq.SkipRetry
	}

	if err := w.completer.CompleteDiagnosis(ctx, sessionID); err != nil {
		w.log.Warn("diagnosis completion failed", "sessionId", sessionID, "error", err)
		return err
	}
	w.log.Debug("diagnosis completed", "sessionId", sessionID)
	return nil
}
