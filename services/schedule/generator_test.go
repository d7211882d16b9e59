package schedule

import (
	"testing"

	"fitbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStepsThroughRange(t *testing.T) {
	slots := Generate([]models.TimeRange{{From: "09:00", To: "12:00"}}, DurationLong)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)
	assert.Equal(t, "11:00", slots[2].StartTime)
	assert.Equal(t, "12:00", slots[2].EndTime)
	assert.Equal(t, DurationLong, slots[0].Duration)
	assert.Equal(t, "9:00 AM", slots[0].DisplayStart)
	assert.Equal(t, "12:00 PM", slots[2].DisplayEnd)
}

func TestGenerateDropsPartialTrailingSlot(t *testing.T) {
	// 09:00-10:30 fits one 60-minute slot; the trailing 30 minutes are dropped.
	slots := Generate([]models.TimeRange{{From: "09:00", To: "10:30"}}, DurationLong)

	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)

	// The same range fits three 30-minute slots exactly.
	slots = Generate([]models.TimeRange{{From: "09:00", To: "10:30"}}, DurationShort)
	assert.Len(t, slots, 3)
}

func TestGenerateRangeShorterThanDuration(t *testing.T) {
	slots := Generate([]models.TimeRange{{From: "09:00", To: "09:45"}}, DurationLong)
	assert.Empty(t, slots)
}

func TestGenerateConcatenatesRangesInOrder(t *testing.T) {
	slots := Generate([]models.TimeRange{
		{From: "09:00", To: "10:00"},
		{From: "14:00", To: "16:00"},
	}, DurationLong)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "14:00", slots[1].StartTime)
	assert.Equal(t, "15:00", slots[2].StartTime)
}

func TestGenerateSkipsMalformedRange(t *testing.T) {
	slots := Generate([]models.TimeRange{
		{From: "bogus", To: "10:00"},
		{From: "11:00", To: "12:00"},
	}, DurationLong)

	require.Len(t, slots, 1)
	assert.Equal(t, "11:00", slots[0].StartTime)
}

func TestGenerateMonthlyViewMergesBothDurations(t *testing.T) {
	slots := GenerateMonthlyView([]models.TimeRange{{From: "09:00", To: "10:00"}})

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.Equal(t, DurationShort, slots[0].Duration)
	assert.Equal(t, "09:00", slots[1].StartTime)
	assert.Equal(t, "10:00", slots[1].EndTime)
	assert.Equal(t, DurationLong, slots[1].Duration)
	assert.Equal(t, "09:30", slots[2].StartTime)
}

func TestGenerateMonthlyViewSorted(t *testing.T) {
	slots := GenerateMonthlyView([]models.TimeRange{
		{From: "14:00", To: "15:00"},
		{From: "09:00", To: "10:00"},
	})

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		ordered := prev.StartTime < cur.StartTime ||
			(prev.StartTime == cur.StartTime && prev.EndTime <= cur.EndTime)
		assert.True(t, ordered, "slots out of order at %d: %v then %v", i, prev, cur)
	}
}

func TestValidateWindows(t *testing.T) {
	valid := []models.AvailabilityWindow{
		{Day: "Monday", Ranges: []models.TimeRange{{From: "09:00", To: "12:00"}}},
		{Day: "Wednesday", Ranges: []models.TimeRange{{From: "14:00", To: "18:00"}}},
	}
	assert.NoError(t, ValidateWindows(valid))

	cases := []struct {
		name    string
		windows []models.AvailabilityWindow
	}{
		{"unknown weekday", []models.AvailabilityWindow{{Day: "Funday"}}},
		{"duplicate weekday", []models.AvailabilityWindow{
			{Day: "Monday", Ranges: []models.TimeRange{{From: "09:00", To: "10:00"}}},
			{Day: "Monday", Ranges: []models.TimeRange{{From: "11:00", To: "12:00"}}},
		}},
		{"malformed time", []models.AvailabilityWindow{
			{Day: "Monday", Ranges: []models.TimeRange{{From: "9am", To: "12:00"}}},
		}},
		{"from after to", []models.AvailabilityWindow{
			{Day: "Monday", Ranges: []models.TimeRange{{From: "12:00", To: "09:00"}}},
		}},
		{"empty range", []models.AvailabilityWindow{
			{Day: "Monday", Ranges: []models.TimeRange{{From: "09:00", To: "09:00"}}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindows(tc.windows)
			require.Error(t, err)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestValidDuration(t *testing.T) {
	assert.True(t, ValidDuration(30))
	assert.True(t, ValidDuration(60))
	assert.False(t, ValidDuration(45))
	assert.False(t, ValidDuration(0))
}
