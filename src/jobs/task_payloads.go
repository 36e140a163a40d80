package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeBackfillProgress = "progress:backfill"

// BackfillPayload scopes a backfill run. An empty ModuleID means every module.
type BackfillPayload struct {
	ModuleID string `json:"module_id,omitempty"`
}

func NewBackfillProgressTask(moduleID string) (*asynq.Task, error) {
	payload, err := json.Marshal(BackfillPayload{ModuleID: moduleID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBackfillProgress, payload), nil
}
