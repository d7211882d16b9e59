package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitbook/config"
	"fitbook/models"
	"fitbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// billingPeriodDays is the length of one paid period. Each successful invoice
// pushes the subscription's end date out by this much.
const billingPeriodDays = 30

// webhookReplayTTL bounds how long processed event IDs are remembered.
// Stripe retries failed deliveries for up to three days.
const webhookReplayTTL = 72 * time.Hour

// EventLedger remembers which webhook event IDs have been processed so
// redelivered events are dropped.
type EventLedger interface {
	// MarkOnce records the event ID and reports whether this is its first
	// sighting.
	MarkOnce(ctx context.Context, eventID string) (bool, error)
	// Forget releases the ID so the provider's retry of a failed delivery is
	// processed instead of dropped as a duplicate.
	Forget(ctx context.Context, eventID string) error
}

type redisEventLedger struct {
	client *redis.Client
}

// NewEventLedger backs the replay ledger with Redis SetNX entries that expire
// after the provider's retry window.
func NewEventLedger(client *redis.Client) EventLedger {
	return &redisEventLedger{client: client}
}

func (l *redisEventLedger) MarkOnce(ctx context.Context, eventID string) (bool, error) {
	return l.client.SetNX(ctx, "stripe:event:"+eventID, 1, webhookReplayTTL).Result()
}

func (l *redisEventLedger) Forget(ctx context.Context, eventID string) error {
	return l.client.Del(ctx, "stripe:event:"+eventID).Err()
}

func (s *DefaultSubscriptionService) HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}
	return s.processEvent(ctx, event)
}

// processEvent applies one verified event exactly once. The replay mark is
// taken up front so concurrent deliveries of the same event cannot both run,
// and released again when processing fails: the handler's error turns into a
// non-2xx response and the provider retries, which must not be dropped as a
// duplicate.
func (s *DefaultSubscriptionService) processEvent(ctx context.Context, event stripe.Event) error {
	if !s.markEvent(ctx, event.ID) {
		utils.GetLogger().Info("duplicate webhook event ignored", zap.String("eventId", event.ID))
		return nil
	}
	if err := s.applyEvent(ctx, event); err != nil {
		s.forgetEvent(ctx, event.ID)
		return err
	}
	return nil
}

func (s *DefaultSubscriptionService) applyEvent(ctx context.Context, event stripe.Event) error {
	logger := utils.GetLogger().With(
		zap.String("eventId", event.ID),
		zap.String("eventType", string(event.Type)))
	logger.Info("processing billing event")

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("invalid checkout session payload: %w", err)
		}
		return s.applyCheckoutCompleted(ctx, &sess)

	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("invalid checkout session payload: %w", err)
		}
		return s.Bookings.ReleaseCheckoutHold(ctx, sess.ID)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("invalid invoice payload: %w", err)
		}
		return s.applyPaymentSucceeded(ctx, &invoice)

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("invalid invoice payload: %w", err)
		}
		return s.applyPaymentFailed(ctx, &invoice)

	case "customer.subscription.deleted":
		var stripeSub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
			return fmt.Errorf("invalid subscription payload: %w", err)
		}
		return s.applySubscriptionDeleted(ctx, &stripeSub)

	default:
		logger.Info("unhandled billing event type")
		return nil
	}
}

// markEvent reports whether this delivery is the first for the event ID.
// Without a ledger every delivery is processed, which is safe because all
// the apply functions are idempotent.
func (s *DefaultSubscriptionService) markEvent(ctx context.Context, eventID string) bool {
	if s.Events == nil {
		return true
	}
	first, err := s.Events.MarkOnce(ctx, eventID)
	if err != nil {
		utils.GetLogger().Warn("webhook replay check failed", zap.String("eventId", eventID), zap.Error(err))
		return true
	}
	return first
}

func (s *DefaultSubscriptionService) forgetEvent(ctx context.Context, eventID string) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Forget(ctx, eventID); err != nil {
		utils.GetLogger().Warn("failed to release webhook replay mark",
			zap.String("eventId", eventID), zap.Error(err))
	}
}

func (s *DefaultSubscriptionService) applyCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	kind := sess.Metadata["kind"]
	userID := sess.Metadata["userId"]
	trainerID := sess.Metadata["trainerId"]
	if kind == "" || userID == "" || trainerID == "" {
		utils.GetLogger().Warn("checkout session missing metadata", zap.String("checkoutSession", sess.ID))
		return nil
	}

	stripeSubID := ""
	if sess.Subscription != nil {
		stripeSubID = sess.Subscription.ID
	}
	customerID := ""
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}

	// One subscription record per provider subscription, no matter how many
	// times the event is delivered.
	if stripeSubID != "" {
		existing, err := s.Subscriptions.GetByStripeID(ctx, stripeSubID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
	}

	today := utils.DateString(s.today())
	sub := &models.Subscription{
		UserID:               userID,
		TrainerID:            trainerID,
		Kind:                 kind,
		Status:               models.SubscriptionStatusActive,
		StartDate:            today,
		EndDate:              utils.DateString(s.today().AddDate(0, 0, billingPeriodDays)),
		StripeCustomerID:     customerID,
		StripeSubscriptionID: stripeSubID,
	}
	if err := s.Subscriptions.Create(ctx, sub); err != nil {
		return err
	}

	if kind == models.SubscriptionKindWeekly {
		if _, err := s.Bookings.ConfirmByCheckoutSession(ctx, sess.ID, stripeSubID); err != nil {
			return fmt.Errorf("failed to confirm booking for checkout %s: %w", sess.ID, err)
		}
	}
	return nil
}

func (s *DefaultSubscriptionService) applyPaymentSucceeded(ctx context.Context, invoice *stripe.Invoice) error {
	sub, err := s.subscriptionForInvoice(ctx, invoice)
	if err != nil || sub == nil {
		return err
	}

	// Extend the paid period from whichever is later, so a renewal paid early
	// never shortens the subscription.
	base := s.today()
	if sub.EndDate != "" {
		if end, perr := time.Parse(utils.DateLayout, sub.EndDate); perr == nil && end.After(base) {
			base = end
		}
	}
	if err := s.Subscriptions.SetEndDate(ctx, sub.ID, utils.DateString(base.AddDate(0, 0, billingPeriodDays))); err != nil {
		return err
	}

	// A subscription paused for non-payment comes back once payment clears.
	if sub.Status == models.SubscriptionStatusPaused && sub.ResumeAt == "" {
		return s.Resume(ctx, sub.ID)
	}
	return nil
}

func (s *DefaultSubscriptionService) applyPaymentFailed(ctx context.Context, invoice *stripe.Invoice) error {
	sub, err := s.subscriptionForInvoice(ctx, invoice)
	if err != nil || sub == nil {
		return err
	}
	if sub.Status != models.SubscriptionStatusActive {
		return nil
	}
	utils.GetLogger().Warn("pausing subscription after failed payment",
		zap.String("subscriptionId", sub.ID))
	return s.Pause(ctx, sub.ID, models.PauseSubscriptionRequest{})
}

func (s *DefaultSubscriptionService) applySubscriptionDeleted(ctx context.Context, stripeSub *stripe.Subscription) error {
	sub, err := s.Subscriptions.GetByStripeID(ctx, stripeSub.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		utils.GetLogger().Warn("no local subscription for deleted stripe subscription",
			zap.String("stripeSubscriptionId", stripeSub.ID))
		return nil
	}
	if sub.Status == models.SubscriptionStatusCancelled {
		return nil
	}
	return s.Cancel(ctx, sub.ID)
}

func (s *DefaultSubscriptionService) subscriptionForInvoice(ctx context.Context, invoice *stripe.Invoice) (*models.Subscription, error) {
	if invoice.Subscription == nil {
		return nil, nil
	}
	sub, err := s.Subscriptions.GetByStripeID(ctx, invoice.Subscription.ID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		utils.GetLogger().Warn("no local subscription for invoice",
			zap.String("stripeSubscriptionId", invoice.Subscription.ID))
	}
	return sub, nil
}
