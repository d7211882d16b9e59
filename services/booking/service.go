package booking

import (
	"context"
	"time"

	bookingRepo "fitbook/database/repository/booking"
	monthlyRepo "fitbook/database/repository/monthly"
	sessionRepo "fitbook/database/repository/session"
	subscriptionRepo "fitbook/database/repository/subscription"
	trainerRepo "fitbook/database/repository/trainer"
	userRepo "fitbook/database/repository/user"
	"fitbook/models"
	"fitbook/services/schedule"
	"fitbook/utils"
)

// DefaultBookingService is the production booking writer. Now is injectable
// so horizon and expiry checks are testable against a fixed date.
type DefaultBookingService struct {
	Users         userRepo.UserRepository
	Trainers      trainerRepo.TrainerRepository
	Sessions      sessionRepo.SessionRepository
	Subscriptions subscriptionRepo.SubscriptionRepository
	Bookings      bookingRepo.BookingRepository
	Monthly       monthlyRepo.MonthlyBookingRepository
	Checker       schedule.ConflictChecker
	Schedule      *schedule.DefaultScheduleService
	Notifier      Notifier
	Now           func() time.Time
}

func (s *DefaultBookingService) today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, newBookingError(CodeNotFound, "booking %s not found", bookingID)
	}
	return booking, nil
}

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

// normalizeSlots validates each occurrence and denormalizes its clock strings
// into minute offsets. Every slot must span exactly the session duration.
func normalizeSlots(slots []models.SlotOccurrence, duration int) error {
	for i := range slots {
		slot := &slots[i]
		if !utils.ValidDate(slot.Date) {
			return schedule.NewValidationError("invalid date %q: expected YYYY-MM-DD", slot.Date)
		}
		startMin, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			return schedule.NewValidationError("%v", err)
		}
		endMin, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			return schedule.NewValidationError("%v", err)
		}
		if endMin-startMin != duration {
			return schedule.NewValidationError("slot %s %s-%s does not match session duration %d",
				slot.Date, slot.StartTime, slot.EndTime, duration)
		}
		slot.StartMin = startMin
		slot.EndMin = endMin
	}
	return nil
}

// invalidateSlotDates drops cached slot lists for every distinct date touched
// by a committed booking.
func (s *DefaultBookingService) invalidateSlotDates(ctx context.Context, trainerID string, dates []string) {
	if s.Schedule == nil {
		return
	}
	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		if seen[date] {
			continue
		}
		seen[date] = true
		s.Schedule.InvalidateSlotCache(ctx, trainerID, date)
	}
}
