package availabilityRepo

import (
	"context"

	"fitbook/models"
)

// AvailabilityRepository persists recurring availability windows and the
// per-date slot overrides layered on top of them.
type AvailabilityRepository interface {
	// Windows.
	ReplaceWindows(ctx context.Context, trainerID string, windows []models.AvailabilityWindow) error
	GetWindows(ctx context.Context, trainerID string) ([]models.AvailabilityWindow, error)
	GetWindowForDay(ctx context.Context, trainerID, day string) (*models.AvailabilityWindow, error)

	// Overrides.
	UpsertOverride(ctx context.Context, override models.SlotOverride) error
	GetOverrides(ctx context.Context, trainerID, date string, duration int) ([]models.SlotOverride, error)
	// ReplaceOverridesForDate upserts the given override set for
	// (trainer, date, duration) and deletes any stored override for that key
	// that is absent from the new set.
	ReplaceOverridesForDate(ctx context.Context, trainerID, date string, duration int, overrides []models.SlotOverride) error
}
