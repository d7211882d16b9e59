package monthlyRepo

import (
	"context"
	"errors"

	"fitbook/models"
)

var (
	// ErrSlotConflict is returned when a slot is held by a confirmed weekly
	// booking at commit time.
	ErrSlotConflict = errors.New("slot no longer available")
	// ErrCapacityExceeded is returned when a slot tuple already has the
	// maximum number of monthly occupants.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")
)

// MonthlyBookingRepository persists shared (monthly) bookings.
type MonthlyBookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*models.MonthlyBooking, error)
	ListBySubscription(ctx context.Context, subscriptionID string) ([]models.MonthlyBooking, error)
	Cancel(ctx context.Context, bookingID string) error

	// CountHolders returns how many confirmed monthly bookings hold the exact
	// (date, startTime, endTime) tuple, plus their IDs. Capacity counting is
	// tuple-exact: 30- and 60-minute slots over the same wall-clock range are
	// independent pools.
	CountHolders(ctx context.Context, trainerID, date, startTime, endTime string) (int, []string, error)
	// CountConfirmedOverlapping counts confirmed monthly bookings with an
	// occurrence on date overlapping [startMin, endMin).
	CountConfirmedOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int) (int, error)
	// GetConfirmedOnDate returns confirmed monthly bookings with at least one
	// occurrence on the given date.
	GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.MonthlyBooking, error)

	// CreateTransactionally re-checks capacity and weekly conflicts for every
	// slot and inserts the booking inside one Mongo transaction.
	CreateTransactionally(ctx context.Context, booking *models.MonthlyBooking) error
}
