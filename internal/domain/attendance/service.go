package attendance

import (
	"context"
)

// AttendanceService defines business logic for clock events
type AttendanceService interface {
	// ClockIn opens a shift on a timesheet
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes an open shift
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// UpdateAttendance corrects an event (admin/manager)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
