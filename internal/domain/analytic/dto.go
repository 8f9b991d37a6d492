package analytic

import (
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/validator"
)

// ========================================
// SERVICE INPUTS
// ========================================

// DutyRequest carries everything the duty-hours calculation reads.
type DutyRequest struct {
	TimesheetID string
	EmployeeID  string
	Date        time.Time
}

type CreateLinesRequest struct {
	TimesheetID string
	EmployeeID  string
	DateFrom    time.Time
	DateTo      time.Time
}

// ========================================
// HTTP DTOs
// ========================================

type RecalculateLineRequest struct {
	Date       string  `json:"date"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *RecalculateLineRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not be empty when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineFilter struct {
	TimesheetID *string `json:"timesheet_id"`
	EmployeeID  *string `json:"employee_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	DayChecked  *bool   `json:"day_checked"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

func (f *LineFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 31
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineResponse struct {
	ID                    string  `json:"id"`
	Date                  string  `json:"date"`
	TimesheetID           string  `json:"timesheet_id"`
	EmployeeID            *string `json:"employee_id,omitempty"`
	ContractID            *string `json:"contract_id"`
	DutyHours             float64 `json:"duty_hours"`
	WorkedHours           float64 `json:"worked_hours"`
	BonusWorkedHours      float64 `json:"bonus_worked_hours"`
	NightShiftWorkedHours float64 `json:"night_shift_worked_hours"`
	Difference            float64 `json:"difference"`
	LeaveDescription      string  `json:"leave_description"`
	DayChecked            bool    `json:"day_checked"`
}

type ListLineResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Lines      []LineResponse `json:"lines"`
}

type ExceptionScanResponse struct {
	Scanned  int `json:"scanned"`
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
}

// NewLineResponse maps a line to its response, deriving the difference.
func NewLineResponse(l Line) LineResponse {
	return LineResponse{
		ID:                    l.ID,
		Date:                  l.Date.Format("2006-01-02"),
		TimesheetID:           l.TimesheetID,
		EmployeeID:            l.EmployeeID,
		ContractID:            l.ContractID,
		DutyHours:             l.DutyHours,
		WorkedHours:           l.WorkedHours,
		BonusWorkedHours:      l.BonusWorkedHours,
		NightShiftWorkedHours: l.NightShiftWorkedHours,
		Difference:            l.Difference(),
		LeaveDescription:      l.LeaveDescription,
		DayChecked:            l.DayChecked,
	}
}
