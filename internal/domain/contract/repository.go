package contract

import (
	"context"
	"time"
)

type ContractRepository interface {
	// FindActive returns every non-cancelled contract of the employee whose
	// period covers date. More than one result is a data integrity problem
	// the caller must surface.
	FindActive(ctx context.Context, employeeID string, date time.Time) ([]Contract, error)
}
