package cron

import (
	"context"
	"time"

	"fitbook/services/notification"
	"fitbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEmailWorker runs the async email worker in the background. The worker
// shares the queue Redis DB with the enqueue client; cache traffic stays on
// its own DB.
func InitEmailWorker(sender *notification.BookingEmailSender) {
	srv := asynq.NewServer(
		notification.QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"emails":  3,
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TaskBookingEmails, sender.HandleBookingEmails)

	go monitorQueueConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("email worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("email worker could not start, giving up")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// monitorQueueConnection pings Redis periodically to detect failures at runtime.
func monitorQueueConnection() {
	client := asynq.NewClient(notification.QueueRedisOpt())
	defer client.Close()

	ctx := context.Background()
	for {
		if err := client.Ping(); err != nil {
			utils.GetLogger().Warn("queue redis connection lost", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
		}
	}
}
