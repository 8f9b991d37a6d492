package attendance

import (
	"time"
)

// Attendance is one clock-in/clock-out event of a timesheet.
type Attendance struct {
	ID                    string
	TimesheetID           string
	EmployeeID            string
	AnalyticLineID        *string
	CheckIn               time.Time
	CheckOut              *time.Time
	WorkedHours           float64
	BonusWorkedHours      float64
	NightShiftWorkedHours float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsOpen reports whether the shift has not been closed yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// Change carries the check-in/check-out values of a write. Nil fields were
// not part of the write.
type Change struct {
	CheckIn  *time.Time
	CheckOut *time.Time
}

// IsEmpty reports whether the write touched neither check-in nor check-out.
func (c Change) IsEmpty() bool {
	return c.CheckIn == nil && c.CheckOut == nil
}

// WorkedHours returns the duration between check-in and check-out in
// fractional hours.
func WorkedHours(checkIn, checkOut time.Time) float64 {
	return checkOut.Sub(checkIn).Hours()
}
