package utils

import (
	"fmt"
	"time"
)

// Calendar/time helpers shared by slot generation, override resolution and
// conflict checking. All date comparisons in the booking core are performed on
// "YYYY-MM-DD" strings rather than time.Time instants, so a user's local
// midnight can never shift a booking across days.

const DateLayout = "2006-01-02"

// ParseClock converts a 24-hour "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected 24-hour HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// To12Hour renders minutes since midnight as "h:mm AM/PM" for display.
func To12Hour(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, period)
}

// DayName returns the weekday name ("Monday".."Sunday") for a date string.
func DayName(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t.Weekday().String(), nil
}

// DateString formats t as a calendar-date string in t's location.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether date is a well-formed "YYYY-MM-DD" string.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
