package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance events.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update writes check in/out and the hour fields of an existing record
	Update(ctx context.Context, attendance Attendance) error

	// GetOpenSession returns the shift of the timesheet still missing a
	// check out, or nil
	GetOpenSession(ctx context.Context, timesheetID string) (*Attendance, error)

	// ListByAnalyticLine returns the events attributed to a line, ordered by check in
	ListByAnalyticLine(ctx context.Context, lineID string) ([]Attendance, error)

	// LinkAnalyticLine attributes the event to a line unless it is already linked
	LinkAnalyticLine(ctx context.Context, id string, lineID string) error
}
