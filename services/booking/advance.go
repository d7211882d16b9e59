package booking

import (
	"context"

	"fitbook/models"
	"fitbook/services/schedule"
	"fitbook/utils"
)

// AdvanceBookingHorizonDays bounds how far ahead a subscriber may rebook:
// the remainder of the current week plus two full weeks ahead.
const AdvanceBookingHorizonDays = 20

func (s *DefaultBookingService) CreateAdvance(ctx context.Context, req models.AdvanceBookingRequest) (*models.Booking, error) {
	sub, err := s.Subscriptions.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, newBookingError(CodeNotFound, "subscription %s not found", req.SubscriptionID)
	}
	if sub.Kind != models.SubscriptionKindWeekly {
		return nil, schedule.NewValidationError("subscription %s is not a weekly plan", req.SubscriptionID)
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

	today := utils.DateString(s.today())
	horizon := utils.DateString(s.today().AddDate(0, 0, AdvanceBookingHorizonDays))
	for _, slot := range req.Slots {
		if !utils.ValidDate(slot.Date) {
			return nil, schedule.NewValidationError("invalid date %q: expected YYYY-MM-DD", slot.Date)
		}
		if slot.Date < today {
			return nil, schedule.NewValidationError("slot date %s is in the past", slot.Date)
		}
		if slot.Date > horizon {
			return nil, schedule.NewValidationError("slot date %s is beyond the %d-day booking horizon",
				slot.Date, AdvanceBookingHorizonDays)
		}
	}

	booking, err := s.createWeekly(ctx, models.CreateBookingRequest{
		UserID:    req.UserID,
		TrainerID: req.TrainerID,
		SessionID: req.SessionID,
		Slots:     req.Slots,
	}, models.BookingStatusConfirmed, "", sub.StripeSubscriptionID)
	if err != nil {
		return nil, err
	}
	s.notifyBooked(ctx, booking.ID)
	return booking, nil
}
