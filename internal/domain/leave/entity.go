package leave

import (
	"time"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	CompanyID   string
	Name        string
	Code        *string
	Description *string
	IsActive    *bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveRequestStatusApproved        LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected        LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled       LeaveRequestStatus = "cancelled"
)

// LeaveDurationEnum maps to leave_duration_enum in DB
type LeaveDurationEnum string

const (
	LeaveDurationFullDay          LeaveDurationEnum = "full_day"
	LeaveDurationHalfDayMorning   LeaveDurationEnum = "half_day_morning"
	LeaveDurationHalfDayAfternoon LeaveDurationEnum = "half_day_afternoon"
)

// Coverage returns the fraction of a day covered by a leave of this duration.
func (d LeaveDurationEnum) Coverage() float64 {
	switch d {
	case LeaveDurationHalfDayMorning, LeaveDurationHalfDayAfternoon:
		return 0.5
	case LeaveDurationFullDay:
		return 1.0
	default:
		return 0
	}
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	DurationType LeaveDurationEnum // 'full_day', 'half_day_morning', 'half_day_afternoon'
	Status       LeaveRequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

// LeaveStatus is the leave situation of an employee on one day.
// Leave is nil when no approved leave covers the day; Coverage is in [0,1].
type LeaveStatus struct {
	Leave    *LeaveRequest
	Coverage float64
}

// HasLeave reports whether any part of the day is covered by leave.
func (s LeaveStatus) HasLeave() bool {
	return s.Leave != nil && s.Coverage > 0
}

// Name returns the leave type name, or an empty string.
func (s LeaveStatus) Name() string {
	if s.Leave == nil || s.Leave.LeaveTypeName == nil {
		return ""
	}
	return *s.Leave.LeaveTypeName
}

// PublicHoliday is a company-wide non-working day.
type PublicHoliday struct {
	ID        string
	CompanyID *string
	Name      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
