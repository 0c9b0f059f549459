package daylog

import (
	"nutrilog-backend/domain"
	"strings"
	"time"
)

// Weeks start on Sunday. Weeks with another start day are legacy rows left
// for the migrate-weeks command.
const weekStart = time.Sunday

// DayOf truncates t to its calendar date in UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD date as a UTC day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return DayOf(t), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// WeekBounds returns the canonical week containing date. end is start + 6 days.
func WeekBounds(date time.Time) (start, end time.Time) {
	date = DayOf(date)
	offset := (int(date.Weekday()) - int(weekStart) + 7) % 7
	start = date.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// IsCanonicalStart reports whether start falls on the first day of a week.
func IsCanonicalStart(start time.Time) bool {
	return DayOf(start).Weekday() == weekStart
}
