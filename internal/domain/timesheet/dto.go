package timesheet

import (
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/validator"
)

type CreateTimesheetRequest struct {
	EmployeeID string `json:"employee_id"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
}

func (r *CreateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, fromOK := validator.IsValidDate(r.DateFrom)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}

	to, toOK := validator.IsValidDate(r.DateTo)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}

	if fromOK && toOK && from.After(to) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: ErrInvalidPeriod.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Summary struct {
	Days                  int     `json:"days"`
	DutyHours             float64 `json:"duty_hours"`
	WorkedHours           float64 `json:"worked_hours"`
	BonusWorkedHours      float64 `json:"bonus_worked_hours"`
	NightShiftWorkedHours float64 `json:"night_shift_worked_hours"`
	Difference            float64 `json:"difference"`
}

type TimesheetResponse struct {
	ID           string                  `json:"id"`
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName *string                 `json:"employee_name,omitempty"`
	DateFrom     string                  `json:"date_from"`
	DateTo       string                  `json:"date_to"`
	Lines        []analytic.LineResponse `json:"lines"`
	Summary      Summary                 `json:"summary"`
}

type ExportFile struct {
	Filename string
	Content  []byte
}
