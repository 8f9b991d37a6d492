package leave

import (
	"context"
	"time"
)

// LeaveRepository - leave lookups against leave_requests and leave_types
type LeaveRepository interface {
	// GetLeaveStatus returns the approved leave covering date for the employee.
	// A day without leave yields a zero LeaveStatus and no error.
	GetLeaveStatus(ctx context.Context, employeeID string, date time.Time) (LeaveStatus, error)
}

// PublicHolidayRepository - interface for public_holidays table
type PublicHolidayRepository interface {
	// GetByDate returns nil when date is not a public holiday.
	GetByDate(ctx context.Context, date time.Time) (*PublicHoliday, error)
}
