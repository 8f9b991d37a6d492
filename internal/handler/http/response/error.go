package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Analytic domain errors
	case errors.Is(err, analytic.ErrLineNotFound):
		NotFound(w, "Analytic line not found")
	case errors.Is(err, analytic.ErrAmbiguousContract):
		Conflict(w, err.Error())
	case errors.Is(err, analytic.ErrNoActiveContract):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, analytic.ErrTemplateNotFound):
		InternalServerError(w, "Notification template not configured")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrInvalidCheckOut):
		BadRequest(w, err.Error(), nil)

	// Lookup errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
