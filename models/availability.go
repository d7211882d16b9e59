package models

// TimeRange is a single from/to pair inside an availability window,
// both ends expressed as 24-hour "HH:MM" strings.
type TimeRange struct {
	From string `bson:"from" json:"from"`
	To   string `bson:"to" json:"to"`
}

// AvailabilityWindow holds a trainer's recurring availability for one weekday.
// A trainer has at most one window record per weekday; the ranges are ordered
// and expected not to overlap (enforced at the edit boundary).
type AvailabilityWindow struct {
	ID        string      `bson:"id" json:"id"`
	TrainerID string      `bson:"trainerId" json:"trainerId"`
	Day       string      `bson:"day" json:"day"` // weekday name, e.g. "Monday"
	Ranges    []TimeRange `bson:"ranges" json:"ranges"`
	IsActive  bool        `bson:"isActive" json:"isActive"`
}

// SlotOverride is an admin's explicit enable/disable of one generated slot on
// one concrete date. Its presence takes precedence over the default (active)
// state implied by the availability window.
type SlotOverride struct {
	ID        string `bson:"id" json:"id"`
	TrainerID string `bson:"trainerId" json:"trainerId"`
	Date      string `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Duration  int    `bson:"duration" json:"duration"` // slot length in minutes (30 or 60)
	IsActive  bool   `bson:"isActive" json:"isActive"`
}

// Weekdays is the canonical weekday ordering used for availability editing.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsValidWeekday reports whether day is one of the seven weekday names.
func IsValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
