package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidCheckOut   = errors.New("check out must be after check in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
