package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	TimesheetID string  `json:"timesheet_id"`
	CheckIn     *string `json:"check_in,omitempty"` // defaults to now

	CheckInTime *time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimesheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timesheet_id",
			Message: "timesheet_id is required",
		})
	}

	if r.CheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid datetime",
			})
		} else {
			r.CheckInTime = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	ID                    string   `json:"-"`
	CheckOut              *string  `json:"check_out,omitempty"` // defaults to now
	BonusWorkedHours      *float64 `json:"bonus_worked_hours,omitempty"`
	NightShiftWorkedHours *float64 `json:"night_shift_worked_hours,omitempty"`

	CheckOutTime *time.Time `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "attendance id is required",
		})
	}

	if r.CheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid datetime",
			})
		} else {
			r.CheckOutTime = &t
		}
	}

	errs = append(errs, validateExtraHours(r.BonusWorkedHours, r.NightShiftWorkedHours)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is used by managers to fix wrong clock data
type UpdateAttendanceRequest struct {
	ID                    string   `json:"-"`
	CheckIn               *string  `json:"check_in,omitempty"`
	CheckOut              *string  `json:"check_out,omitempty"`
	BonusWorkedHours      *float64 `json:"bonus_worked_hours,omitempty"`
	NightShiftWorkedHours *float64 `json:"night_shift_worked_hours,omitempty"`

	CheckInTime  *time.Time `json:"-"`
	CheckOutTime *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "attendance id is required",
		})
	}

	if r.CheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid datetime",
			})
		} else {
			r.CheckInTime = &t
		}
	}

	if r.CheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid datetime",
			})
		} else {
			r.CheckOutTime = &t
		}
	}

	errs = append(errs, validateExtraHours(r.BonusWorkedHours, r.NightShiftWorkedHours)...)

	if r.CheckIn == nil && r.CheckOut == nil && r.BonusWorkedHours == nil && r.NightShiftWorkedHours == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateExtraHours(bonus, night *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if bonus != nil && (*bonus < 0 || *bonus > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus_worked_hours",
			Message: "bonus_worked_hours must be between 0 and 24",
		})
	}
	if night != nil && (*night < 0 || *night > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "night_shift_worked_hours",
			Message: "night_shift_worked_hours must be between 0 and 24",
		})
	}
	return errs
}

type AttendanceResponse struct {
	ID                    string  `json:"id"`
	TimesheetID           string  `json:"timesheet_id"`
	EmployeeID            string  `json:"employee_id"`
	AnalyticLineID        *string `json:"analytic_line_id"`
	CheckIn               string  `json:"check_in"`
	CheckOut              *string `json:"check_out"`
	WorkedHours           float64 `json:"worked_hours"`
	BonusWorkedHours      float64 `json:"bonus_worked_hours"`
	NightShiftWorkedHours float64 `json:"night_shift_worked_hours"`
}
