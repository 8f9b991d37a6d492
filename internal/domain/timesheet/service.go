package timesheet

import "context"

// TimesheetService defines business logic for timesheet periods
type TimesheetService interface {
	// CreateTimesheet creates the period and seeds one analytic line per day
	CreateTimesheet(ctx context.Context, req CreateTimesheetRequest) (TimesheetResponse, error)

	// RefreshLines seeds lines for days of the period that have none yet
	RefreshLines(ctx context.Context, id string) (TimesheetResponse, error)

	// GetTimesheet returns the period with its lines and totals
	GetTimesheet(ctx context.Context, id string) (TimesheetResponse, error)

	// ExportTimesheet renders the period as an xlsx workbook
	ExportTimesheet(ctx context.Context, id string) (ExportFile, error)
}
