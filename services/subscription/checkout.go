package subscription

import (
	"context"
	"fmt"

	"fitbook/config"
	"fitbook/models"
	"fitbook/services/schedule"
	"fitbook/utils"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

func (s *DefaultSubscriptionService) StartCheckout(ctx context.Context, req models.StartCheckoutRequest) (*models.CheckoutResult, error) {
	if req.Kind != models.SubscriptionKindWeekly && req.Kind != models.SubscriptionKindMonthly {
		return nil, schedule.NewValidationError("unsupported subscription kind %q", req.Kind)
	}
	if req.Kind == models.SubscriptionKindMonthly && !s.AllowMonthlyCheckout {
		return nil, schedule.NewValidationError("monthly subscriptions are not offered")
	}

	user, err := s.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, schedule.NewValidationError("user %s not found", req.UserID)
	}
	session, err := s.Sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsActive {
		return nil, schedule.NewValidationError("session package %s is not available", req.SessionID)
	}
	if session.StripePriceID == "" {
		return nil, fmt.Errorf("session package %s has no billing price configured", req.SessionID)
	}
	if req.Kind == models.SubscriptionKindWeekly && len(req.Slots) == 0 {
		return nil, schedule.NewValidationError("weekly checkout requires a slot selection")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(config.AppConfig.CheckoutSuccessURL),
		CancelURL:         stripe.String(config.AppConfig.CheckoutCancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		CustomerEmail:     stripe.String(user.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(session.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"userId":    req.UserID,
			"trainerId": req.TrainerID,
			"sessionId": req.SessionID,
			"kind":      req.Kind,
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"userId":    req.UserID,
				"trainerId": req.TrainerID,
				"kind":      req.Kind,
			},
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	// Hold the slot selection as a pending booking so the webhook only has to
	// flip it to confirmed. Conflicts surface here, before the user pays.
	if req.Kind == models.SubscriptionKindWeekly {
		if _, err := s.Bookings.CreatePendingCheckout(ctx, models.CreateBookingRequest{
			UserID:    req.UserID,
			TrainerID: req.TrainerID,
			SessionID: req.SessionID,
			Slots:     req.Slots,
		}, sess.ID); err != nil {
			utils.GetLogger().Warn("abandoning checkout session after booking hold failed",
				zap.String("checkoutSession", sess.ID), zap.Error(err))
			if _, expireErr := checkoutsession.Expire(sess.ID, nil); expireErr != nil {
				utils.GetLogger().Error("failed to expire orphaned checkout session",
					zap.String("checkoutSession", sess.ID), zap.Error(expireErr))
			}
			return nil, err
		}
	}

	return &models.CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}
