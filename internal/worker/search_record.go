package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"newsdesk/internal/store"
	"newsdesk/internal/tasks"
)

// SearchRecordDeps carries the stores the analytics handlers need.
type SearchRecordDeps struct {
	History store.SearchHistoryStore
}

// HandleSearchRecordTask persists one executed search to the analytics table.
func HandleSearchRecordTask(deps SearchRecordDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload tasks.SearchRecordPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			// A malformed payload will never succeed; don't retry.
			return fmt.Errorf("unmarshal search record payload: %v: %w", err, asynq.SkipRetry)
		}

		record, err := deps.History.RecordSearchQuery(ctx, payload.Query, payload.ResultsCount)
		if err != nil {
			return fmt.Errorf("record search query %q: %w", payload.Query, err)
		}
		log.Debugf("Recorded search query id=%d query=%q results=%d", record.ID, payload.Query, payload.ResultsCount)
		return nil
	}
}

// RegisterHandlers wires all worker handlers onto the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps SearchRecordDeps) {
	mux.HandleFunc(tasks.TypeSearchRecord, HandleSearchRecordTask(deps))
}
