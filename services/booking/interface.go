package booking

import (
	"context"

	"fitbook/models"
)

// BookingService is the write side of the booking core. Every multi-slot
// operation is all-or-nothing: a single conflicting slot voids the batch.
type BookingService interface {
	// CreateWeekly books an exclusive weekly slot set directly (bypassing
	// checkout), confirming immediately and dispatching notification emails.
	CreateWeekly(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	// CreatePendingCheckout records a pending booking tied to a checkout
	// session; the payment webhook confirms or discards it.
	CreatePendingCheckout(ctx context.Context, req models.CreateBookingRequest, checkoutSessionID string) (*models.Booking, error)
	// ConfirmByCheckoutSession flips a pending booking to confirmed once the
	// provider reports the checkout completed.
	ConfirmByCheckoutSession(ctx context.Context, checkoutSessionID, stripeSubscriptionID string) (*models.Booking, error)
	// ReleaseCheckoutHold cancels the pending booking tied to an expired or
	// abandoned checkout session, freeing its slots. No-op when the session
	// has no pending hold.
	ReleaseCheckoutHold(ctx context.Context, checkoutSessionID string) error
	// CreateMonthly books shared monthly slots against an active subscription.
	CreateMonthly(ctx context.Context, req models.CreateMonthlyBookingRequest) (*models.MonthlyBooking, error)
	// CancelMonthly releases a monthly booking's shared occupancy.
	CancelMonthly(ctx context.Context, bookingID string) error
	// CreateAdvance rebooks weekly slots against an existing subscription,
	// bounded to the advance-booking horizon.
	CreateAdvance(ctx context.Context, req models.AdvanceBookingRequest) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}

// Notifier hands booking notifications off to the async worker. Implementations
// must be fire-and-forget safe: enqueue failures are logged by the caller and
// never fail the booking.
type Notifier interface {
	EnqueueBookingEmails(ctx context.Context, bookingID string) error
}
