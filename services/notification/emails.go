package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	bookingRepo "fitbook/database/repository/booking"
	trainerRepo "fitbook/database/repository/trainer"
	userRepo "fitbook/database/repository/user"
	"fitbook/models"
	"fitbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingEmailSender is the worker-side handler for TaskBookingEmails. It
// re-loads the booking and both parties, then mails each a confirmation.
// Send failures are logged and swallowed: notification is best-effort and
// must never resurrect an already-committed booking into the retry queue.
type BookingEmailSender struct {
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Trainers trainerRepo.TrainerRepository
	Mailer   Mailer
}

func (s *BookingEmailSender) HandleBookingEmails(ctx context.Context, t *asynq.Task) error {
	var payload models.BookingEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode email payload: %w", err)
	}

	booking, err := s.Bookings.GetByID(ctx, payload.BookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		utils.GetLogger().Warn("booking gone before emails were sent",
			zap.String("bookingId", payload.BookingID))
		return nil
	}

	user, err := s.Users.GetByID(ctx, booking.UserID)
	if err != nil {
		return err
	}
	trainer, err := s.Trainers.GetByID(ctx, booking.TrainerID)
	if err != nil {
		return err
	}

	schedule := formatSchedule(booking.Slots)
	if user != nil {
		body := fmt.Sprintf("Hi %s,\n\nYour booking is confirmed. Your sessions:\n\n%s\n\nSee you there!",
			user.Name, schedule)
		s.send(user.Email, "Booking confirmed", body, payload.BookingID)
	}
	if trainer != nil {
		name := "a client"
		if user != nil {
			name = user.Name
		}
		body := fmt.Sprintf("Hi %s,\n\nYou have a new booking from %s:\n\n%s",
			trainer.Name, name, schedule)
		s.send(trainer.Email, "New booking", body, payload.BookingID)
	}
	return nil
}

func (s *BookingEmailSender) send(to, subject, body, bookingID string) {
	if to == "" {
		return
	}
	if err := s.Mailer.Send(to, subject, body); err != nil {
		utils.GetLogger().Error("failed to send booking email",
			zap.String("bookingId", bookingID), zap.String("to", to), zap.Error(err))
	}
}

// formatSchedule renders occurrences as one display line per session.
func formatSchedule(slots []models.SlotOccurrence) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		start, err1 := utils.ParseClock(slot.StartTime)
		end, err2 := utils.ParseClock(slot.EndTime)
		if err1 != nil || err2 != nil {
			lines = append(lines, fmt.Sprintf("  %s  %s - %s", slot.Date, slot.StartTime, slot.EndTime))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s - %s", slot.Date, utils.To12Hour(start), utils.To12Hour(end)))
	}
	return strings.Join(lines, "\n")
}
