package schedule

import (
	"context"
	"testing"

	"fitbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-07 is a Monday.
const testDate = "2026-09-07"

func newTestService() (*DefaultScheduleService, *fakeAvailabilityRepo, *fakeBookingRepo, *fakeMonthlyRepo) {
	availability := newFakeAvailabilityRepo()
	bookings := &fakeBookingRepo{}
	monthly := &fakeMonthlyRepo{}
	svc := &DefaultScheduleService{
		Availability: availability,
		Bookings:     bookings,
		Monthly:      monthly,
	}
	availability.windows["Monday"] = &models.AvailabilityWindow{
		TrainerID: "t1",
		Day:       "Monday",
		Ranges:    []models.TimeRange{{From: "09:00", To: "12:00"}},
		IsActive:  true,
	}
	return svc, availability, bookings, monthly
}

func TestDaySlotsResolvesOverrides(t *testing.T) {
	svc, availability, _, _ := newTestService()
	require.NoError(t, availability.UpsertOverride(context.Background(), models.SlotOverride{
		TrainerID: "t1", Date: testDate, StartTime: "10:00", EndTime: "11:00",
		Duration: 60, IsActive: false,
	}))

	slots, err := svc.DaySlots(context.Background(), "t1", testDate, 60)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].IsActive)
	assert.False(t, slots[1].IsActive)
	assert.True(t, slots[2].IsActive)
}

func TestDaySlotsNoWindowYieldsEmpty(t *testing.T) {
	svc, _, _, _ := newTestService()

	// 2026-09-08 is a Tuesday with no configured window.
	slots, err := svc.DaySlots(context.Background(), "t1", "2026-09-08", 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlotsInactiveWindowYieldsEmpty(t *testing.T) {
	svc, availability, _, _ := newTestService()
	availability.windows["Monday"].IsActive = false

	slots, err := svc.DaySlots(context.Background(), "t1", testDate, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlotsRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.DaySlots(context.Background(), "t1", "07/09/2026", 60)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.DaySlots(context.Background(), "t1", testDate, 45)
	assert.ErrorAs(t, err, &ve)
}

func TestToggleSlotUpsertsOverride(t *testing.T) {
	svc, availability, _, _ := newTestService()

	req := models.ToggleOverrideRequest{
		Date: testDate, StartTime: "09:00", EndTime: "10:00", Duration: 60, IsActive: false,
	}
	require.NoError(t, svc.ToggleSlot(context.Background(), "t1", req))
	require.Len(t, availability.overrides, 1)
	assert.False(t, availability.overrides[0].IsActive)

	// Toggling back updates the same record.
	req.IsActive = true
	require.NoError(t, svc.ToggleSlot(context.Background(), "t1", req))
	require.Len(t, availability.overrides, 1)
	assert.True(t, availability.overrides[0].IsActive)
}

func TestToggleSlotRejectsMismatchedDuration(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.ToggleSlot(context.Background(), "t1", models.ToggleOverrideRequest{
		Date: testDate, StartTime: "09:00", EndTime: "10:00", Duration: 30,
	})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSetAllForDateWritesEveryFreeSlot(t *testing.T) {
	svc, availability, _, _ := newTestService()

	err := svc.SetAllForDate(context.Background(), "t1", models.SetAllOverridesRequest{
		Date: testDate, Duration: 60, IsActive: false,
	})
	require.NoError(t, err)
	require.Len(t, availability.lastReplaced, 3)
	for _, o := range availability.lastReplaced {
		assert.False(t, o.IsActive)
		assert.Equal(t, testDate, o.Date)
		assert.Equal(t, 60, o.Duration)
	}
}

func TestSetAllForDateSkipsBookedSlots(t *testing.T) {
	svc, availability, bookings, monthly := newTestService()
	bookings.bookings = append(bookings.bookings,
		weeklyBooking("b1", "t1", testDate, "09:00", "10:00"))
	monthly.bookings = append(monthly.bookings,
		monthlyBooking("m1", "t1", testDate, "11:00", "12:00", 60))

	err := svc.SetAllForDate(context.Background(), "t1", models.SetAllOverridesRequest{
		Date: testDate, Duration: 60, IsActive: false,
	})
	require.NoError(t, err)

	// Only 10:00-11:00 is free to disable.
	require.Len(t, availability.lastReplaced, 1)
	assert.Equal(t, "10:00", availability.lastReplaced[0].StartTime)
}

func TestSetAllForDateIsIdempotent(t *testing.T) {
	svc, availability, _, _ := newTestService()
	req := models.SetAllOverridesRequest{Date: testDate, Duration: 60, IsActive: false}

	require.NoError(t, svc.SetAllForDate(context.Background(), "t1", req))
	first := len(availability.overrides)
	require.NoError(t, svc.SetAllForDate(context.Background(), "t1", req))

	assert.Equal(t, first, len(availability.overrides))
	assert.Len(t, availability.replacedDates, 2)
}

func TestSetAllForDateLeavesOtherDurationAlone(t *testing.T) {
	svc, availability, _, _ := newTestService()
	require.NoError(t, availability.UpsertOverride(context.Background(), models.SlotOverride{
		TrainerID: "t1", Date: testDate, StartTime: "09:00", EndTime: "09:30",
		Duration: 30, IsActive: false,
	}))

	err := svc.SetAllForDate(context.Background(), "t1", models.SetAllOverridesRequest{
		Date: testDate, Duration: 60, IsActive: true,
	})
	require.NoError(t, err)

	thirty, err := availability.GetOverrides(context.Background(), "t1", testDate, 30)
	require.NoError(t, err)
	assert.Len(t, thirty, 1, "30-minute overrides survive a 60-minute bulk write")
}
