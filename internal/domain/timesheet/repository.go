package timesheet

import "context"

type TimesheetRepository interface {
	Create(ctx context.Context, sheet Timesheet) (Timesheet, error)
	GetByID(ctx context.Context, id string) (Timesheet, error)
}
