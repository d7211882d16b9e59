package schedule

import (
	"context"

	"fitbook/models"
)

// ScheduleService exposes the availability surface: resolved slot lists for a
// date, and the admin override operations layered on top of generation.
type ScheduleService interface {
	// DaySlots returns the bookable slot list for one date at one duration,
	// with overrides applied.
	DaySlots(ctx context.Context, trainerID, date string, duration int) ([]models.ResolvedSlot, error)
	// MonthlyDaySlots returns the dual-duration slot view offered to monthly
	// subscribers.
	MonthlyDaySlots(ctx context.Context, trainerID, date string) ([]models.ResolvedSlot, error)
	// SetAvailability replaces a trainer's weekly availability windows.
	SetAvailability(ctx context.Context, trainerID string, windows []models.AvailabilityWindow) error
	// GetAvailability returns a trainer's configured windows.
	GetAvailability(ctx context.Context, trainerID string) ([]models.AvailabilityWindow, error)
	// ToggleSlot enables or disables one generated slot on one date.
	ToggleSlot(ctx context.Context, trainerID string, req models.ToggleOverrideRequest) error
	// SetAllForDate applies one active state to every slot of a date that is
	// not already held by a confirmed booking.
	SetAllForDate(ctx context.Context, trainerID string, req models.SetAllOverridesRequest) error
}
