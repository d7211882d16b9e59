package subscription

import (
	"context"

	"fitbook/models"
)

// SubscriptionService owns the billing lifecycle: hosted checkout, provider
// webhook processing and the pause/resume/cancel transitions that gate
// booking writes.
type SubscriptionService interface {
	// StartCheckout creates a hosted checkout session for a session package.
	// Weekly checkouts also record a pending booking tied to the session.
	StartCheckout(ctx context.Context, req models.StartCheckoutRequest) (*models.CheckoutResult, error)
	// HandleStripeEvent verifies and applies one provider webhook delivery.
	// Replayed event IDs are acknowledged without reprocessing.
	HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error

	GetSubscription(ctx context.Context, subscriptionID string) (*models.Subscription, error)
	Pause(ctx context.Context, subscriptionID string, req models.PauseSubscriptionRequest) error
	Resume(ctx context.Context, subscriptionID string) error
	Cancel(ctx context.Context, subscriptionID string) error

	// ResumeDue reactivates paused subscriptions whose resume date has passed.
	// Run on a schedule; returns how many were resumed.
	ResumeDue(ctx context.Context) (int, error)
	// ExpireEnded marks active subscriptions past their end date as expired.
	ExpireEnded(ctx context.Context) (int, error)
}
