package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TaskCompleteDiagnosis = "onboarding.diagnosis.complete"

type CompleteDiagnosisPayload struct {
	SessionID string `json:"sessionId"`
}

func NewCompleteDiagnosisTask(sessionID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(CompleteDiagnosisPayload{SessionID: sessionID.String()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCompleteDiagnosis, data), nil
}

func ParseCompleteDiagnosisPayload(task *asynq.Task) (uuid.UUID, error) {
	var payload CompleteDiagnosisPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id %q: %w", payload.SessionID, err)
	}
	return id, nil
}
