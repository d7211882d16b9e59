package cron

import (
	"context"
	"time"

	"fitbook/services/subscription"
	"fitbook/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// lifecycleSchedule runs the subscription sweeps shortly after midnight, when
// resume and end dates roll over.
const lifecycleSchedule = "10 0 * * *"

// StartLifecycleCron schedules the daily subscription sweeps: auto-resuming
// paused subscriptions whose resume date arrived and expiring subscriptions
// past their end date.
func StartLifecycleCron(subSvc subscription.SubscriptionService) *cron.Cron {
	logger := utils.GetLogger()
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(lifecycleSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()

		resumed, err := subSvc.ResumeDue(ctx)
		if err != nil {
			logger.Error("subscription resume sweep failed", zap.Error(err))
		} else if resumed > 0 {
			logger.Info("auto-resumed subscriptions", zap.Int("count", resumed))
		}

		expired, err := subSvc.ExpireEnded(ctx)
		if err != nil {
			logger.Error("subscription expiry sweep failed", zap.Error(err))
		} else if expired > 0 {
			logger.Info("expired subscriptions", zap.Int("count", expired))
		}
	})
	if err != nil {
		logger.Fatal("failed to schedule subscription sweeps", zap.Error(err))
	}

	logger.Info("subscription lifecycle cron started", zap.String("schedule", lifecycleSchedule))
	c.Start()
	return c
}
