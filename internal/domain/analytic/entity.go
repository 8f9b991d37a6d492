package analytic

import (
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/contract"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/leave"
)

// DefaultLeaveDescription marks a day without holiday or leave.
const DefaultLeaveDescription = "-"

// Line is the daily attendance aggregate of one timesheet.
// At most one Line exists per (TimesheetID, Date).
type Line struct {
	ID                    string
	Date                  time.Time
	TimesheetID           string
	ContractID            *string
	DutyHours             float64
	WorkedHours           float64
	BonusWorkedHours      float64
	NightShiftWorkedHours float64
	Running               float64
	LeaveDescription      string
	DayChecked            bool
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// DTO
	EmployeeID *string
}

// Difference is worked minus duty hours. It is derived on every read and
// never stored.
func (l Line) Difference() float64 {
	return l.WorkedHours - l.DutyHours
}

// DutyHours is the result of the duty-hours calculation for one day. All
// parts are returned so callers can derive the leave description and
// contract reference.
type DutyHours struct {
	Hours         float64
	Contract      *contract.Contract
	Leave         leave.LeaveStatus
	PublicHoliday *leave.PublicHoliday
}

// ContractID returns the contract reference, or nil when no contract applies.
func (d DutyHours) ContractID() *string {
	if d.Contract == nil {
		return nil
	}
	id := d.Contract.ID
	return &id
}

// LeaveDescription returns the holiday name, else the leave type name, else
// DefaultLeaveDescription.
func (d DutyHours) LeaveDescription() string {
	if d.PublicHoliday != nil {
		return d.PublicHoliday.Name
	}
	if d.Leave.HasLeave() {
		if name := d.Leave.Name(); name != "" {
			return name
		}
	}
	return DefaultLeaveDescription
}

// ExceptionScanResult reports one pass of the exception notification scan.
type ExceptionScanResult struct {
	Scanned  int
	Notified int
	// Skipped counts exceptions whose employee has no email address.
	Skipped int
}
