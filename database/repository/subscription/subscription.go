package subscriptionRepo

import (
	"context"

	"fitbook/models"
)

// SubscriptionRepository defines persistence for payment subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error)
	GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error)
	SetStatus(ctx context.Context, subscriptionID, status string) error
	SetResumeAt(ctx context.Context, subscriptionID, resumeAt string) error
	SetEndDate(ctx context.Context, subscriptionID, endDate string) error
	// ListPausedDueForResume returns paused subscriptions whose resume date is
	// on or before today.
	ListPausedDueForResume(ctx context.Context, today string) ([]models.Subscription, error)
	// ListActiveEnded returns active subscriptions whose end date has passed.
	ListActiveEnded(ctx context.Context, today string) ([]models.Subscription, error)
}
