package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"fitbook/config"
	"fitbook/models"

	"github.com/hibiken/asynq"
)

// TaskBookingEmails is enqueued after a booking commits; the worker loads the
// booking and mails both parties.
const TaskBookingEmails = "booking:emails"

// QueueRedisOpt builds the asynq Redis connection from app config. The queue
// uses its own logical DB so flushing the cache never drops pending tasks.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// QueueClient enqueues notification tasks. Implements the booking service's
// Notifier.
type QueueClient struct {
	client *asynq.Client
}

func NewQueueClient() *QueueClient {
	return &QueueClient{client: asynq.NewClient(QueueRedisOpt())}
}

func (q *QueueClient) EnqueueBookingEmails(ctx context.Context, bookingID string) error {
	payload, err := json.Marshal(models.BookingEmailPayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}
	task := asynq.NewTask(TaskBookingEmails, payload)
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Queue("emails")); err != nil {
		return fmt.Errorf("failed to enqueue booking emails: %w", err)
	}
	return nil
}

func (q *QueueClient) Close() error {
	return q.client.Close()
}
