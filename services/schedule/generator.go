package schedule

import (
	"sort"

	"fitbook/models"
	"fitbook/utils"
)

// Supported slot durations in minutes.
const (
	DurationShort = 30
	DurationLong  = 60
)

// Generate expands a day's availability ranges into fixed-duration bookable
// slots. Each range is stepped from its start in durationMinutes increments;
// a slot is emitted while its end still fits inside the range, so partial
// trailing slots are dropped. Ranges are processed independently and
// concatenated in input order.
//
// Inputs are validated when availability is written (see ValidateWindows);
// a range that fails to parse here yields no slots.
func Generate(ranges []models.TimeRange, durationMinutes int) []models.GeneratedSlot {
	var slots []models.GeneratedSlot
	for _, r := range ranges {
		from, err := utils.ParseClock(r.From)
		if err != nil {
			continue
		}
		to, err := utils.ParseClock(r.To)
		if err != nil {
			continue
		}
		for start := from; start+durationMinutes <= to; start += durationMinutes {
			end := start + durationMinutes
			slots = append(slots, models.GeneratedSlot{
				StartTime:    utils.FormatClock(start),
				EndTime:      utils.FormatClock(end),
				DisplayStart: utils.To12Hour(start),
				DisplayEnd:   utils.To12Hour(end),
				Duration:     durationMinutes,
			})
		}
	}
	return slots
}

// GenerateMonthlyView produces the slot list offered to monthly subscribers:
// the union of the 30- and 60-minute generations, deduplicated by start-end
// key with 30-minute entries taking precedence, ordered by start then end.
// The two durations remain independent capacity pools.
func GenerateMonthlyView(ranges []models.TimeRange) []models.GeneratedSlot {
	seen := make(map[string]bool)
	var merged []models.GeneratedSlot
	for _, duration := range []int{DurationShort, DurationLong} {
		for _, slot := range Generate(ranges, duration) {
			key := slot.StartTime + "-" + slot.EndTime
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, slot)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].StartTime == merged[j].StartTime {
			return merged[i].EndTime < merged[j].EndTime
		}
		return merged[i].StartTime < merged[j].StartTime
	})
	return merged
}

// ValidateWindows enforces the availability invariants before anything is
// persisted: known weekday names, at most one window per weekday, well-formed
// zero-padded times, and from < to within each range.
func ValidateWindows(windows []models.AvailabilityWindow) error {
	seenDay := make(map[string]bool)
	for _, w := range windows {
		if !models.IsValidWeekday(w.Day) {
			return NewValidationError("unknown weekday %q", w.Day)
		}
		if seenDay[w.Day] {
			return NewValidationError("duplicate availability window for %s", w.Day)
		}
		seenDay[w.Day] = true

		for _, r := range w.Ranges {
			from, err := utils.ParseClock(r.From)
			if err != nil {
				return NewValidationError("%s: %v", w.Day, err)
			}
			to, err := utils.ParseClock(r.To)
			if err != nil {
				return NewValidationError("%s: %v", w.Day, err)
			}
			if from >= to {
				return NewValidationError("%s: range %s-%s must start before it ends", w.Day, r.From, r.To)
			}
		}
	}
	return nil
}

// ValidDuration reports whether durationMinutes is a supported slot length.
func ValidDuration(durationMinutes int) bool {
	return durationMinutes == DurationShort || durationMinutes == DurationLong
}
