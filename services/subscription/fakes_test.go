package subscription

import (
	"context"
	"fmt"
	"time"

	"fitbook/models"
	"fitbook/services/booking"
)

// testToday matches the dates used across the lifecycle tests. 2026-09-01 is a
// Tuesday.
var testToday = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

type fakeSubscriptionRepo struct {
	subs       map[string]*models.Subscription
	failCreate error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*models.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if sub.ID == "" {
		sub.ID = fmt.Sprintf("sub-%d", len(r.subs)+1)
	}
	copied := *sub
	r.subs[sub.ID] = &copied
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	sub, ok := r.subs[subscriptionID]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (r *fakeSubscriptionRepo) GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error) {
	for _, sub := range r.subs {
		if sub.StripeSubscriptionID == stripeSubscriptionID {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) SetStatus(ctx context.Context, subscriptionID, status string) error {
	if sub, ok := r.subs[subscriptionID]; ok {
		sub.Status = status
	}
	return nil
}

func (r *fakeSubscriptionRepo) SetResumeAt(ctx context.Context, subscriptionID, resumeAt string) error {
	if sub, ok := r.subs[subscriptionID]; ok {
		sub.ResumeAt = resumeAt
	}
	return nil
}

func (r *fakeSubscriptionRepo) SetEndDate(ctx context.Context, subscriptionID, endDate string) error {
	if sub, ok := r.subs[subscriptionID]; ok {
		sub.EndDate = endDate
	}
	return nil
}

func (r *fakeSubscriptionRepo) ListPausedDueForResume(ctx context.Context, today string) ([]models.Subscription, error) {
	var due []models.Subscription
	for _, sub := range r.subs {
		if sub.Status == models.SubscriptionStatusPaused && sub.ResumeAt != "" && sub.ResumeAt <= today {
			due = append(due, *sub)
		}
	}
	return due, nil
}

func (r *fakeSubscriptionRepo) ListActiveEnded(ctx context.Context, today string) ([]models.Subscription, error) {
	var ended []models.Subscription
	for _, sub := range r.subs {
		if sub.Status == models.SubscriptionStatusActive && sub.EndDate != "" && sub.EndDate < today {
			ended = append(ended, *sub)
		}
	}
	return ended, nil
}

// fakeLinkedBookings covers only the lookups the lifecycle paths touch.
type fakeLinkedBookings struct {
	bookings map[string]*models.Booking
}

func newFakeLinkedBookings() *fakeLinkedBookings {
	return &fakeLinkedBookings{bookings: make(map[string]*models.Booking)}
}

func (r *fakeLinkedBookings) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r *fakeLinkedBookings) GetByCheckoutSession(ctx context.Context, checkoutSessionID string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.CheckoutSessionID == checkoutSessionID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeLinkedBookings) GetByStripeSubscription(ctx context.Context, stripeSubscriptionID string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.StripeSubscriptionID == stripeSubscriptionID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeLinkedBookings) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeLinkedBookings) SetStatus(ctx context.Context, bookingID, status string) error {
	if b, ok := r.bookings[bookingID]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeLinkedBookings) SetStripeSubscription(ctx context.Context, bookingID, stripeSubscriptionID string) error {
	if b, ok := r.bookings[bookingID]; ok {
		b.StripeSubscriptionID = stripeSubscriptionID
	}
	return nil
}

func (r *fakeLinkedBookings) CountBlockingOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (int, error) {
	return 0, nil
}

func (r *fakeLinkedBookings) GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeLinkedBookings) CreateTransactionally(ctx context.Context, booking *models.Booking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

// fakeChecker reports a conflict for the slot keys listed in blocked, keyed
// as "date start-end" in minutes.
type fakeChecker struct {
	blocked map[string]bool
}

func slotKey(date string, startMin, endMin int) string {
	return fmt.Sprintf("%s %d-%d", date, startMin, endMin)
}

func (c *fakeChecker) IsWeeklyBlocked(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (bool, error) {
	return c.blocked[slotKey(date, startMin, endMin)], nil
}

func (c *fakeChecker) MonthlyCapacity(ctx context.Context, trainerID, date, startTime, endTime string) (*models.SlotCapacity, error) {
	return &models.SlotCapacity{IsAvailable: true}, nil
}

func (c *fakeChecker) IsSlotDisabled(ctx context.Context, trainerID, date, startTime, endTime string, duration int) (bool, error) {
	return false, nil
}

// fakeEventLedger is an in-memory replay ledger.
type fakeEventLedger struct {
	marked map[string]bool
}

func newFakeEventLedger() *fakeEventLedger {
	return &fakeEventLedger{marked: make(map[string]bool)}
}

func (l *fakeEventLedger) MarkOnce(ctx context.Context, eventID string) (bool, error) {
	if l.marked[eventID] {
		return false, nil
	}
	l.marked[eventID] = true
	return true, nil
}

func (l *fakeEventLedger) Forget(ctx context.Context, eventID string) error {
	delete(l.marked, eventID)
	return nil
}

// fakeBookingService records the checkout-session calls the webhook paths make.
type fakeBookingService struct {
	booking.BookingService

	confirmed []string
	released  []string
}

func (s *fakeBookingService) ConfirmByCheckoutSession(ctx context.Context, checkoutSessionID, stripeSubscriptionID string) (*models.Booking, error) {
	s.confirmed = append(s.confirmed, checkoutSessionID)
	return &models.Booking{ID: "b1", Status: models.BookingStatusConfirmed}, nil
}

func (s *fakeBookingService) ReleaseCheckoutHold(ctx context.Context, checkoutSessionID string) error {
	s.released = append(s.released, checkoutSessionID)
	return nil
}

func newLifecycleService() (*DefaultSubscriptionService, *fakeSubscriptionRepo, *fakeLinkedBookings) {
	subs := newFakeSubscriptionRepo()
	bookings := newFakeLinkedBookings()
	svc := &DefaultSubscriptionService{
		Subscriptions:  subs,
		BookingRecords: bookings,
		Checker:        &fakeChecker{blocked: make(map[string]bool)},
		Now:            func() time.Time { return testToday },
	}
	return svc, subs, bookings
}
