package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrPublicHolidayNotFound = errors.New("public holiday not found")
)
