package subscription

import (
	"context"
	"fmt"

	"fitbook/models"
	"fitbook/services/booking"
	"fitbook/services/schedule"
	"fitbook/utils"

	"go.uber.org/zap"
)

func (s *DefaultSubscriptionService) GetSubscription(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	sub, err := s.Subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, &booking.BookingError{
			Code:    booking.CodeNotFound,
			Message: fmt.Sprintf("subscription %s not found", subscriptionID),
		}
	}
	return sub, nil
}

// Pause suspends a subscription and its linked weekly booking, releasing the
// booked slots until the subscription resumes.
func (s *DefaultSubscriptionService) Pause(ctx context.Context, subscriptionID string, req models.PauseSubscriptionRequest) error {
	sub, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status != models.SubscriptionStatusActive {
		return schedule.NewValidationError("subscription %s is %s, only active subscriptions can be paused",
			subscriptionID, sub.Status)
	}
	if req.ResumeAt != "" {
		if !utils.ValidDate(req.ResumeAt) {
			return schedule.NewValidationError("invalid resume date %q: expected YYYY-MM-DD", req.ResumeAt)
		}
		if req.ResumeAt <= utils.DateString(s.today()) {
			return schedule.NewValidationError("resume date %s must be in the future", req.ResumeAt)
		}
	}

	if err := s.Subscriptions.SetStatus(ctx, subscriptionID, models.SubscriptionStatusPaused); err != nil {
		return err
	}
	if err := s.Subscriptions.SetResumeAt(ctx, subscriptionID, req.ResumeAt); err != nil {
		return err
	}
	s.setLinkedBookingStatus(ctx, sub, models.BookingStatusPaused)
	return nil
}

// Resume reactivates a paused subscription and restores its weekly booking.
// The linked booking's slots were released while paused and may have been
// taken; every occurrence is re-checked before any status changes, and a
// conflict leaves the subscription paused.
func (s *DefaultSubscriptionService) Resume(ctx context.Context, subscriptionID string) error {
	sub, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status != models.SubscriptionStatusPaused {
		return schedule.NewValidationError("subscription %s is %s, only paused subscriptions can be resumed",
			subscriptionID, sub.Status)
	}
	if err := s.checkLinkedBookingFree(ctx, sub); err != nil {
		return err
	}

	if err := s.Subscriptions.SetStatus(ctx, subscriptionID, models.SubscriptionStatusActive); err != nil {
		return err
	}
	if err := s.Subscriptions.SetResumeAt(ctx, subscriptionID, ""); err != nil {
		return err
	}
	s.setLinkedBookingStatus(ctx, sub, models.BookingStatusConfirmed)
	return nil
}

// checkLinkedBookingFree verifies the paused booking's slots are still open.
// The booking's own record is excluded from the overlap count since a paused
// booking no longer blocks, but the exclusion keeps this safe if statuses
// ever get out of step.
func (s *DefaultSubscriptionService) checkLinkedBookingFree(ctx context.Context, sub *models.Subscription) error {
	if s.Checker == nil {
		return nil
	}
	linked, err := s.linkedBooking(ctx, sub)
	if err != nil || linked == nil {
		return err
	}
	for _, slot := range linked.Slots {
		blocked, err := s.Checker.IsWeeklyBlocked(ctx, linked.TrainerID, slot.Date, slot.StartMin, slot.EndMin, linked.ID)
		if err != nil {
			return err
		}
		if blocked {
			return &booking.BookingError{
				Code: booking.CodeSlotConflict,
				Message: fmt.Sprintf("cannot resume subscription %s: slot %s %s-%s was booked while paused",
					sub.ID, slot.Date, slot.StartTime, slot.EndTime),
			}
		}
	}
	return nil
}

// Cancel terminates a subscription and its weekly booking permanently.
func (s *DefaultSubscriptionService) Cancel(ctx context.Context, subscriptionID string) error {
	sub, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status == models.SubscriptionStatusCancelled {
		return nil
	}
	if err := s.Subscriptions.SetStatus(ctx, subscriptionID, models.SubscriptionStatusCancelled); err != nil {
		return err
	}
	s.setLinkedBookingStatus(ctx, sub, models.BookingStatusCancelled)
	return nil
}

// ResumeDue reactivates paused subscriptions whose scheduled resume date has
// arrived. Failures are logged per subscription so one bad record cannot
// stall the sweep.
func (s *DefaultSubscriptionService) ResumeDue(ctx context.Context) (int, error) {
	due, err := s.Subscriptions.ListPausedDueForResume(ctx, utils.DateString(s.today()))
	if err != nil {
		return 0, err
	}
	resumed := 0
	for _, sub := range due {
		if err := s.Resume(ctx, sub.ID); err != nil {
			utils.GetLogger().Error("failed to auto-resume subscription",
				zap.String("subscriptionId", sub.ID), zap.Error(err))
			continue
		}
		resumed++
	}
	return resumed, nil
}

// ExpireEnded sweeps active subscriptions whose end date has passed.
func (s *DefaultSubscriptionService) ExpireEnded(ctx context.Context) (int, error) {
	ended, err := s.Subscriptions.ListActiveEnded(ctx, utils.DateString(s.today()))
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, sub := range ended {
		if err := s.Subscriptions.SetStatus(ctx, sub.ID, models.SubscriptionStatusExpired); err != nil {
			utils.GetLogger().Error("failed to expire subscription",
				zap.String("subscriptionId", sub.ID), zap.Error(err))
			continue
		}
		s.setLinkedBookingStatus(ctx, &sub, models.BookingStatusCompleted)
		expired++
	}
	return expired, nil
}

// linkedBooking resolves the weekly booking tied to the subscription's
// provider record, when one exists. Monthly bookings are not linked this way;
// their slots simply stop being bookable once the subscription lapses.
func (s *DefaultSubscriptionService) linkedBooking(ctx context.Context, sub *models.Subscription) (*models.Booking, error) {
	if sub.StripeSubscriptionID == "" || s.BookingRecords == nil {
		return nil, nil
	}
	return s.BookingRecords.GetByStripeSubscription(ctx, sub.StripeSubscriptionID)
}

// setLinkedBookingStatus flips the linked weekly booking's status. Lookup and
// write failures are logged, not returned: the subscription transition has
// already been committed.
func (s *DefaultSubscriptionService) setLinkedBookingStatus(ctx context.Context, sub *models.Subscription, status string) {
	booking, err := s.linkedBooking(ctx, sub)
	if err != nil || booking == nil {
		if err != nil {
			utils.GetLogger().Error("failed to look up linked booking",
				zap.String("subscriptionId", sub.ID), zap.Error(err))
		}
		return
	}
	if booking.Status == status {
		return
	}
	if err := s.BookingRecords.SetStatus(ctx, booking.ID, status); err != nil {
		utils.GetLogger().Error("failed to update linked booking status",
			zap.String("bookingId", booking.ID), zap.String("status", status), zap.Error(err))
	}
}
