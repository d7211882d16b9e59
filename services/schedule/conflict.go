package schedule

import (
	"context"
	"fmt"

	bookingRepo "fitbook/database/repository/booking"
	monthlyRepo "fitbook/database/repository/monthly"

	availabilityRepo "fitbook/database/repository/availability"
	"fitbook/models"
	"fitbook/utils"
)

// ConflictChecker decides whether a candidate slot is blocked by existing
// reservations or an admin-disabled override. Results are advisory on read
// paths; the booking repositories repeat the same checks inside their create
// transactions.
type ConflictChecker interface {
	// IsWeeklyBlocked reports whether an exclusive booking request for the
	// range is blocked by another weekly booking (confirmed or a pending
	// checkout hold) or by any confirmed monthly occupancy.
	IsWeeklyBlocked(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (bool, error)
	// MonthlyCapacity reports shared occupancy for the exact slot tuple and
	// whether one more monthly booking may take it.
	MonthlyCapacity(ctx context.Context, trainerID, date, startTime, endTime string) (*models.SlotCapacity, error)
	// IsSlotDisabled reports whether an admin override has disabled the slot.
	IsSlotDisabled(ctx context.Context, trainerID, date, startTime, endTime string, duration int) (bool, error)
}

// Overlaps is the shared time-overlap predicate: half-open ranges [s1,e1) and
// [s2,e2) overlap iff s1 < e2 && s2 < e1.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// DefaultConflictChecker is the production implementation.
type DefaultConflictChecker struct {
	Bookings     bookingRepo.BookingRepository
	Monthly      monthlyRepo.MonthlyBookingRepository
	Availability availabilityRepo.AvailabilityRepository
}

func (c *DefaultConflictChecker) IsWeeklyBlocked(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (bool, error) {
	n, err := c.Bookings.CountBlockingOverlapping(ctx, trainerID, date, startMin, endMin, excludeBookingID)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	// Shared occupancy also blocks exclusive use of the trainer's time.
	m, err := c.Monthly.CountConfirmedOverlapping(ctx, trainerID, date, startMin, endMin)
	if err != nil {
		return false, err
	}
	return m > 0, nil
}

func (c *DefaultConflictChecker) MonthlyCapacity(ctx context.Context, trainerID, date, startTime, endTime string) (*models.SlotCapacity, error) {
	startMin, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	endMin, err := utils.ParseClock(endTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	// Exclusive bookings always win over shared ones.
	weekly, err := c.Bookings.CountBlockingOverlapping(ctx, trainerID, date, startMin, endMin, "")
	if err != nil {
		return nil, err
	}

	count, occupants, err := c.Monthly.CountHolders(ctx, trainerID, date, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &models.SlotCapacity{
		Count:       count,
		IsAvailable: weekly == 0 && count < models.MonthlySlotCapacity,
		Occupants:   occupants,
	}, nil
}

func (c *DefaultConflictChecker) IsSlotDisabled(ctx context.Context, trainerID, date, startTime, endTime string, duration int) (bool, error) {
	overrides, err := c.Availability.GetOverrides(ctx, trainerID, date, duration)
	if err != nil {
		return false, fmt.Errorf("failed to check slot overrides: %w", err)
	}
	for _, o := range overrides {
		if o.StartTime == startTime && o.EndTime == endTime {
			return !o.IsActive, nil
		}
	}
	return false, nil
}
