package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	availabilityRepo "fitbook/database/repository/availability"
	bookingRepo "fitbook/database/repository/booking"
	monthlyRepo "fitbook/database/repository/monthly"
	"fitbook/models"
	"fitbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// slotCacheTTL keeps resolved day-slot responses hot for listing traffic.
// Reads may be briefly stale; the booking transaction is authoritative.
const slotCacheTTL = 30 * time.Second

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	Monthly      monthlyRepo.MonthlyBookingRepository
	Cache        *redis.Client
}

func (s *DefaultScheduleService) DaySlots(ctx context.Context, trainerID, date string, duration int) ([]models.ResolvedSlot, error) {
	if !utils.ValidDate(date) {
		return nil, NewValidationError("invalid date %q: expected YYYY-MM-DD", date)
	}
	if !ValidDuration(duration) {
		return nil, NewValidationError("unsupported duration %d: expected 30 or 60", duration)
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%d", trainerID, date, duration)
	if cached := s.cachedSlots(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	generated, err := s.generateForDate(ctx, trainerID, date, func(ranges []models.TimeRange) []models.GeneratedSlot {
		return Generate(ranges, duration)
	})
	if err != nil {
		return nil, err
	}

	overrides, err := s.Availability.GetOverrides(ctx, trainerID, date, duration)
	if err != nil {
		return nil, err
	}

	resolved := Resolve(generated, overrides)
	s.cacheSlots(ctx, cacheKey, resolved)
	return resolved, nil
}

func (s *DefaultScheduleService) MonthlyDaySlots(ctx context.Context, trainerID, date string) ([]models.ResolvedSlot, error) {
	if !utils.ValidDate(date) {
		return nil, NewValidationError("invalid date %q: expected YYYY-MM-DD", date)
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:monthly", trainerID, date)
	if cached := s.cachedSlots(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	generated, err := s.generateForDate(ctx, trainerID, date, GenerateMonthlyView)
	if err != nil {
		return nil, err
	}

	// Overrides are stored per duration; the merged view needs both sets.
	var overrides []models.SlotOverride
	for _, duration := range []int{DurationShort, DurationLong} {
		o, err := s.Availability.GetOverrides(ctx, trainerID, date, duration)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o...)
	}

	resolved := Resolve(generated, overrides)
	s.cacheSlots(ctx, cacheKey, resolved)
	return resolved, nil
}

func (s *DefaultScheduleService) SetAvailability(ctx context.Context, trainerID string, windows []models.AvailabilityWindow) error {
	if err := ValidateWindows(windows); err != nil {
		return err
	}
	return s.Availability.ReplaceWindows(ctx, trainerID, windows)
}

func (s *DefaultScheduleService) GetAvailability(ctx context.Context, trainerID string) ([]models.AvailabilityWindow, error) {
	return s.Availability.GetWindows(ctx, trainerID)
}

// generateForDate looks up the trainer's window for the date's weekday and
// expands it with the supplied generation function. A missing or deactivated
// window yields an empty slot list, not an error.
func (s *DefaultScheduleService) generateForDate(ctx context.Context, trainerID, date string, generate func([]models.TimeRange) []models.GeneratedSlot) ([]models.GeneratedSlot, error) {
	day, err := utils.DayName(date)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	window, err := s.Availability.GetWindowForDay(ctx, trainerID, day)
	if err != nil {
		return nil, err
	}
	if window == nil || !window.IsActive {
		return []models.GeneratedSlot{}, nil
	}
	return generate(window.Ranges), nil
}

func (s *DefaultScheduleService) cachedSlots(ctx context.Context, key string) []models.ResolvedSlot {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var slots []models.ResolvedSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil
	}
	return slots
}

func (s *DefaultScheduleService) cacheSlots(ctx context.Context, key string, slots []models.ResolvedSlot) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, slotCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache slot list", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateSlotCache drops cached slot lists for a trainer's date after an
// override write or booking commit.
func (s *DefaultScheduleService) InvalidateSlotCache(ctx context.Context, trainerID, date string) {
	if s.Cache == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("slots:%s:%s:%d", trainerID, date, DurationShort),
		fmt.Sprintf("slots:%s:%s:%d", trainerID, date, DurationLong),
		fmt.Sprintf("slots:%s:%s:monthly", trainerID, date),
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate slot cache", zap.String("trainer", trainerID), zap.Error(err))
	}
}
