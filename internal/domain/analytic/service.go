package analytic

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
)

// AnalyticService defines the duty and worktime rules of analytic lines
type AnalyticService interface {
	// CalculateDutyHours determines expected duty hours of one day
	CalculateDutyHours(ctx context.Context, req DutyRequest) (DutyHours, error)

	// CreateLines ensures one line per day of [DateFrom, DateTo]
	CreateLines(ctx context.Context, req CreateLinesRequest) ([]Line, error)

	// RecalculateLine refreshes duty hours, contract and leave description of
	// the lines of a date. Worked hours are left untouched.
	RecalculateLine(ctx context.Context, date time.Time, employeeID *string) ([]Line, error)

	// RecalculateLineWorktime applies a clock-in/clock-out write to the line of its day
	RecalculateLineWorktime(ctx context.Context, event attendance.Attendance, change attendance.Change) (*Line, error)

	// CheckExceptions notifies on past lines whose variance exceeds the threshold
	CheckExceptions(ctx context.Context) (ExceptionScanResult, error)

	GetLine(ctx context.Context, id string) (LineResponse, error)
	ListLines(ctx context.Context, filter LineFilter) (ListLineResponse, error)
}

// Notifier sends a mail template about one analytic line synchronously.
type Notifier interface {
	// SendTemplate returns ErrNoRecipient when the line has nobody to mail.
	SendTemplate(ctx context.Context, templateKey string, lineID string) error
}
