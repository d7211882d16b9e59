package bookingRepo

import (
	"context"
	"errors"

	"fitbook/models"
)

// ErrSlotConflict is returned when a transactional create finds a requested
// slot already held at commit time.
var ErrSlotConflict = errors.New("slot no longer available")

// BookingRepository persists exclusive (weekly) bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByCheckoutSession(ctx context.Context, checkoutSessionID string) (*models.Booking, error)
	GetByStripeSubscription(ctx context.Context, stripeSubscriptionID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	SetStatus(ctx context.Context, bookingID, status string) error
	SetStripeSubscription(ctx context.Context, bookingID, stripeSubscriptionID string) error

	// CountBlockingOverlapping counts weekly bookings (other than
	// excludeBookingID) with an occurrence on date overlapping
	// [startMin, endMin). Confirmed bookings and pending checkout holds both
	// count; a hold reserves its slots until paid or expired.
	CountBlockingOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (int, error)
	// GetConfirmedOnDate returns confirmed weekly bookings with at least one
	// occurrence on the given date.
	GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.Booking, error)

	// CreateTransactionally re-runs the overlap checks for every slot and
	// inserts the booking inside one Mongo transaction. Returns
	// ErrSlotConflict (wrapped with the offending slot) when any slot is
	// already held by a weekly booking or checkout hold, or by a confirmed
	// monthly booking.
	CreateTransactionally(ctx context.Context, booking *models.Booking) error
}
