package booking

import (
	"context"
	"errors"
	"time"

	monthlyRepo "fitbook/database/repository/monthly"
	"fitbook/models"
	"fitbook/services/schedule"
	"fitbook/utils"

	"github.com/google/uuid"
)

func (s *DefaultBookingService) CreateMonthly(ctx context.Context, req models.CreateMonthlyBookingRequest) (*models.MonthlyBooking, error) {
	sub, err := s.Subscriptions.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, newBookingError(CodeNotFound, "subscription %s not found", req.SubscriptionID)
	}
	if sub.Kind != models.SubscriptionKindMonthly {
		return nil, schedule.NewValidationError("subscription %s is not a monthly plan", req.SubscriptionID)
	}
	if err := s.checkSubscriptionUsable(sub); err != nil {
		return nil, err
	}
	if sub.UserID != req.UserID {
		return nil, schedule.NewValidationError("subscription %s does not belong to user %s", req.SubscriptionID, req.UserID)
	}
	if sub.TrainerID != req.TrainerID {
		return nil, schedule.NewValidationError("subscription %s is not with trainer %s", req.SubscriptionID, req.TrainerID)
	}

	if len(req.Slots) == 0 {
		return nil, schedule.NewValidationError("at least one slot is required")
	}
	if err := s.normalizeMonthlySlots(req.Slots, sub); err != nil {
		return nil, err
	}

	for _, slot := range req.Slots {
		disabled, err := s.Checker.IsSlotDisabled(ctx, req.TrainerID, slot.Date, slot.StartTime, slot.EndTime, slot.Duration)
		if err != nil {
			return nil, err
		}
		if disabled {
			return nil, newBookingError(CodeSlotConflict, "slot %s %s-%s is unavailable",
				slot.Date, slot.StartTime, slot.EndTime)
		}
		capacity, err := s.Checker.MonthlyCapacity(ctx, req.TrainerID, slot.Date, slot.StartTime, slot.EndTime)
		if err != nil {
			return nil, err
		}
		if !capacity.IsAvailable {
			if capacity.Count >= models.MonthlySlotCapacity {
				return nil, newBookingError(CodeCapacityExceeded, "slot %s %s-%s is fully occupied",
					slot.Date, slot.StartTime, slot.EndTime)
			}
			return nil, newBookingError(CodeSlotConflict, "slot %s %s-%s is reserved by a weekly booking",
				slot.Date, slot.StartTime, slot.EndTime)
		}
	}

	now := time.Now()
	booking := &models.MonthlyBooking{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		TrainerID:      req.TrainerID,
		SubscriptionID: req.SubscriptionID,
		Slots:          req.Slots,
		Status:         models.MonthlyBookingStatusConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Monthly.CreateTransactionally(ctx, booking); err != nil {
		if errors.Is(err, monthlyRepo.ErrCapacityExceeded) {
			return nil, newBookingError(CodeCapacityExceeded, "%v", err)
		}
		if errors.Is(err, monthlyRepo.ErrSlotConflict) {
			return nil, newBookingError(CodeSlotConflict, "%v", err)
		}
		return nil, err
	}

	dates := make([]string, 0, len(booking.Slots))
	for _, slot := range booking.Slots {
		dates = append(dates, slot.Date)
	}
	s.invalidateSlotDates(ctx, booking.TrainerID, dates)
	return booking, nil
}

func (s *DefaultBookingService) CancelMonthly(ctx context.Context, bookingID string) error {
	booking, err := s.Monthly.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return newBookingError(CodeNotFound, "monthly booking %s not found", bookingID)
	}
	if booking.Status == models.MonthlyBookingStatusCancelled {
		return nil
	}
	if err := s.Monthly.Cancel(ctx, bookingID); err != nil {
		return err
	}

	dates := make([]string, 0, len(booking.Slots))
	for _, slot := range booking.Slots {
		dates = append(dates, slot.Date)
	}
	s.invalidateSlotDates(ctx, booking.TrainerID, dates)
	return nil
}

// checkSubscriptionUsable rejects paused, cancelled and expired subscriptions.
// Expiry is checked against the end date as well as the stored status, so a
// subscription the lifecycle job has not swept yet still cannot book.
func (s *DefaultBookingService) checkSubscriptionUsable(sub *models.Subscription) error {
	switch sub.Status {
	case models.SubscriptionStatusActive:
	case models.SubscriptionStatusExpired:
		return newBookingError(CodeSubscriptionExpired, "subscription %s expired on %s", sub.ID, sub.EndDate)
	default:
		return newBookingError(CodeSubscriptionInactive, "subscription %s is %s", sub.ID, sub.Status)
	}
	if sub.EndDate != "" && sub.EndDate < utils.DateString(s.today()) {
		return newBookingError(CodeSubscriptionExpired, "subscription %s expired on %s", sub.ID, sub.EndDate)
	}
	return nil
}

// normalizeMonthlySlots validates each shared occurrence, fills minute
// offsets and enforces that every date falls inside the subscription window.
func (s *DefaultBookingService) normalizeMonthlySlots(slots []models.MonthlySlotOccurrence, sub *models.Subscription) error {
	for i := range slots {
		slot := &slots[i]
		if !utils.ValidDate(slot.Date) {
			return schedule.NewValidationError("invalid date %q: expected YYYY-MM-DD", slot.Date)
		}
		if slot.Date < sub.StartDate || (sub.EndDate != "" && slot.Date > sub.EndDate) {
			return newBookingError(CodeOutOfSubscriptionRange,
				"slot date %s is outside the subscription period %s to %s",
				slot.Date, sub.StartDate, sub.EndDate)
		}
		if !schedule.ValidDuration(slot.Duration) {
			return schedule.NewValidationError("unsupported duration %d: expected 30 or 60", slot.Duration)
		}
		startMin, err := utils.ParseClock(slot.StartTime)
		if err != nil {
			return schedule.NewValidationError("%v", err)
		}
		endMin, err := utils.ParseClock(slot.EndTime)
		if err != nil {
			return schedule.NewValidationError("%v", err)
		}
		if endMin-startMin != slot.Duration {
			return schedule.NewValidationError("slot %s %s-%s does not match duration %d",
				slot.Date, slot.StartTime, slot.EndTime, slot.Duration)
		}
		slot.StartMin = startMin
		slot.EndMin = endMin
	}
	return nil
}
