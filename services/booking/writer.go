package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "fitbook/database/repository/booking"
	"fitbook/models"
	"fitbook/services/schedule"
	"fitbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) CreateWeekly(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	booking, err := s.createWeekly(ctx, req, models.BookingStatusConfirmed, "", "")
	if err != nil {
		return nil, err
	}
	s.notifyBooked(ctx, booking.ID)
	return booking, nil
}

func (s *DefaultBookingService) CreatePendingCheckout(ctx context.Context, req models.CreateBookingRequest, checkoutSessionID string) (*models.Booking, error) {
	return s.createWeekly(ctx, req, models.BookingStatusPending, checkoutSessionID, "")
}

func (s *DefaultBookingService) ConfirmByCheckoutSession(ctx context.Context, checkoutSessionID, stripeSubscriptionID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByCheckoutSession(ctx, checkoutSessionID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, newBookingError(CodeNotFound, "no booking for checkout session %s", checkoutSessionID)
	}
	if booking.Status == models.BookingStatusConfirmed {
		return booking, nil
	}
	if stripeSubscriptionID != "" {
		if err := s.Bookings.SetStripeSubscription(ctx, booking.ID, stripeSubscriptionID); err != nil {
			return nil, err
		}
		booking.StripeSubscriptionID = stripeSubscriptionID
	}
	if err := s.Bookings.SetStatus(ctx, booking.ID, models.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusConfirmed
	s.notifyBooked(ctx, booking.ID)
	return booking, nil
}

// ReleaseCheckoutHold frees the slots reserved by a pending checkout. Holds
// block competing bookings from the moment they are written, so expiry must
// release them or an abandoned checkout would keep the slot forever.
func (s *DefaultBookingService) ReleaseCheckoutHold(ctx context.Context, checkoutSessionID string) error {
	booking, err := s.Bookings.GetByCheckoutSession(ctx, checkoutSessionID)
	if err != nil {
		return err
	}
	if booking == nil || booking.Status != models.BookingStatusPending {
		return nil
	}
	if err := s.Bookings.SetStatus(ctx, booking.ID, models.BookingStatusCancelled); err != nil {
		return err
	}

	dates := make([]string, 0, len(booking.Slots))
	for _, slot := range booking.Slots {
		dates = append(dates, slot.Date)
	}
	s.invalidateSlotDates(ctx, booking.TrainerID, dates)
	return nil
}

// createWeekly runs the full weekly write path: reference lookups, slot
// normalization, advisory conflict checks, then the all-or-nothing insert.
// The repository transaction repeats the conflict checks, so a race between
// the advisory pass and the commit still fails cleanly.
func (s *DefaultBookingService) createWeekly(ctx context.Context, req models.CreateBookingRequest, status, checkoutSessionID, stripeSubscriptionID string) (*models.Booking, error) {
	user, err := s.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newBookingError(CodeNotFound, "user %s not found", req.UserID)
	}
	trainer, err := s.Trainers.GetByID(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, newBookingError(CodeNotFound, "trainer %s not found", req.TrainerID)
	}
	session, err := s.Sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, newBookingError(CodeNotFound, "session package %s not found", req.SessionID)
	}
	if !session.IsActive {
		return nil, schedule.NewValidationError("session package %s is no longer offered", req.SessionID)
	}
	if len(req.Slots) != session.SessionsPerWeek {
		return nil, schedule.NewValidationError("expected %d slots for this session package, got %d",
			session.SessionsPerWeek, len(req.Slots))
	}
	if err := normalizeSlots(req.Slots, session.DurationMinutes); err != nil {
		return nil, err
	}

	for _, slot := range req.Slots {
		disabled, err := s.Checker.IsSlotDisabled(ctx, req.TrainerID, slot.Date, slot.StartTime, slot.EndTime, session.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if disabled {
			return nil, newBookingError(CodeSlotConflict, "slot %s %s-%s is unavailable",
				slot.Date, slot.StartTime, slot.EndTime)
		}
		blocked, err := s.Checker.IsWeeklyBlocked(ctx, req.TrainerID, slot.Date, slot.StartMin, slot.EndMin, "")
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, newBookingError(CodeSlotConflict, "slot %s %s-%s is already booked",
				slot.Date, slot.StartTime, slot.EndTime)
		}
	}

	now := time.Now()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		UserID:               req.UserID,
		TrainerID:            req.TrainerID,
		SessionID:            req.SessionID,
		Slots:                req.Slots,
		Status:               status,
		StripeSubscriptionID: stripeSubscriptionID,
		CheckoutSessionID:    checkoutSessionID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.Bookings.CreateTransactionally(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
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

// notifyBooked hands the confirmation emails to the async queue. Enqueue
// failures are logged and swallowed: the booking is already committed.
func (s *DefaultBookingService) notifyBooked(ctx context.Context, bookingID string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.EnqueueBookingEmails(ctx, bookingID); err != nil {
		utils.GetLogger().Error("failed to enqueue booking emails",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}
