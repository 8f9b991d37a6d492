package schedule

import "time"

// WorkCalendarTime is one working slot of a weekday. Clock values are
// offsets from midnight.
type WorkCalendarTime struct {
	ID                string
	WorkCalendarID    string
	DayOfWeek         int // 1=Monday, ..., 7=Sunday
	ClockInTime       time.Duration
	BreakStartTime    *time.Duration
	BreakEndTime      *time.Duration
	ClockOutTime      time.Duration
	IsNextDayCheckout bool // Indicates if checkout is on the next day
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Duration returns the working time of the slot excluding its break.
func (t WorkCalendarTime) Duration() time.Duration {
	out := t.ClockOutTime
	if t.IsNextDayCheckout {
		out += 24 * time.Hour
	}
	d := out - t.ClockInTime
	if t.BreakStartTime != nil && t.BreakEndTime != nil && *t.BreakEndTime > *t.BreakStartTime {
		d -= *t.BreakEndTime - *t.BreakStartTime
	}
	if d < 0 {
		return 0
	}
	return d
}

// DayOfWeek maps a date to the calendar weekday numbering (1=Monday, 7=Sunday).
func DayOfWeek(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// NominalHours sums the working slots of a day in hours. No slot means a
// non-working day.
func NominalHours(times []WorkCalendarTime) float64 {
	var total time.Duration
	for _, t := range times {
		total += t.Duration()
	}
	return total.Hours()
}
