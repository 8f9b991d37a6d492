package timesheet

import "errors"

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrInvalidPeriod     = errors.New("date_from must not be after date_to")
)
