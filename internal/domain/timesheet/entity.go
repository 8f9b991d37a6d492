package timesheet

import "time"

// Timesheet is the period record owning a range of analytic lines.
type Timesheet struct {
	ID         string
	EmployeeID string
	DateFrom   time.Time
	DateTo     time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
