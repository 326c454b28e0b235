package store

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"newsdesk/internal/tasks"
)

// AsynqJobClient is the concrete JobClient backed by Redis via asynq.
var _ JobClient = (*AsynqJobClient)(nil)

type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(redisAddr, redisPassword string, redisDB int) (*AsynqJobClient, error) {
	if redisAddr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	cli := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return &AsynqJobClient{client: cli}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// EnqueueSearchRecord queues an analytics row for the worker to persist.
func (jc *AsynqJobClient) EnqueueSearchRecord(ctx context.Context, query string, resultsCount int) error {
	task, err := tasks.NewSearchRecordTask(query, resultsCount)
	if err != nil {
		return fmt.Errorf("build search record task: %w", err)
	}
	info, err := jc.client.EnqueueContext(ctx, task, asynq.Queue(tasks.QueueAnalytics))
	if err != nil {
		return fmt.Errorf("enqueue search record task: %w", err)
	}
	log.Debugf("Enqueued task %s id=%s queue=%s", task.Type(), info.ID, info.Queue)
	return nil
}
