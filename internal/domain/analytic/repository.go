package analytic

import (
	"context"
	"time"
)

// LineRepository defines data access methods for attendance analytic lines.
type LineRepository interface {
	// Create inserts a new line. Day checked is always false on creation.
	Create(ctx context.Context, line Line) (Line, error)

	GetByID(ctx context.Context, id string) (Line, error)

	// GetByTimesheetAndDate returns nil when the day has no line yet
	GetByTimesheetAndDate(ctx context.Context, timesheetID string, date time.Time) (*Line, error)

	// ListByDate returns lines of date, restricted to one employee when employeeID is set
	ListByDate(ctx context.Context, date time.Time, employeeID *string) ([]Line, error)

	// ListUnchecked returns every line the exception scan has not evaluated yet
	ListUnchecked(ctx context.Context) ([]Line, error)

	List(ctx context.Context, filter LineFilter) ([]Line, int64, error)

	// UpdateSchedule writes duty hours, contract and leave description
	UpdateSchedule(ctx context.Context, line Line) error

	// UpdateWorktime writes worked, bonus and night shift hours and day checked
	UpdateWorktime(ctx context.Context, line Line) error

	MarkChecked(ctx context.Context, id string) error
}
