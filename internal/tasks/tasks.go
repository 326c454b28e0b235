package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task types and queues used with asynq.

const (
	// TypeSearchRecord persists one executed search to the analytics table.
	TypeSearchRecord = "search:record"

	QueueAnalytics = "analytics"
)

// SearchRecordPayload is the JSON payload of a TypeSearchRecord task.
type SearchRecordPayload struct {
	Query        string `json:"query"`
	ResultsCount int    `json:"results_count"`
}

func NewSearchRecordTask(query string, resultsCount int) (*asynq.Task, error) {
	payload, err := json.Marshal(SearchRecordPayload{Query: query, ResultsCount: resultsCount})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSearchRecord, payload), nil
}
