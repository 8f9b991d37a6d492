package analytic

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLineNotFound      = errors.New("attendance analytic line not found")
	ErrAmbiguousContract = errors.New("ambiguous active contract")
	ErrNoActiveContract  = errors.New("no active contract")
	ErrTemplateNotFound  = errors.New("notification template not found")
	ErrNoRecipient       = errors.New("notification recipient has no email")
)

// AmbiguousContractError is returned when more than one active contract
// matches an employee on a date. It is a configuration error and is not
// retried.
type AmbiguousContractError struct {
	EmployeeID string
	Date       time.Time
	Count      int
}

func (e *AmbiguousContractError) Error() string {
	return fmt.Sprintf("%s: employee %s has %d active contracts on %s",
		ErrAmbiguousContract, e.EmployeeID, e.Count, e.Date.Format("2006-01-02"))
}

func (e *AmbiguousContractError) Is(target error) bool {
	return target == ErrAmbiguousContract
}
