package contract

import "time"

type ContractState string

const (
	ContractStateDraft     ContractState = "draft"
	ContractStateOpen      ContractState = "open"
	ContractStatePending   ContractState = "pending"
	ContractStateClosed    ContractState = "closed"
	ContractStateCancelled ContractState = "cancel"
)

// Contract is the employment contract in effect for an employee over a period.
type Contract struct {
	ID             string
	EmployeeID     string
	Name           string
	State          ContractState
	DateStart      time.Time
	DateEnd        *time.Time
	RatePerHour    bool // paid per hour worked, no schedule expectation
	WorkCalendarID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsFlatRate reports whether the contract pays per hour actually worked.
func (c *Contract) IsFlatRate() bool {
	return c != nil && c.RatePerHour
}

// IsCancelled reports whether the contract is in the cancelled state.
func (c *Contract) IsCancelled() bool {
	return c != nil && c.State == ContractStateCancelled
}

// CoversDate reports whether date falls within [DateStart, DateEnd].
// An unset DateEnd is open-ended.
func (c Contract) CoversDate(date time.Time) bool {
	if date.Before(c.DateStart) {
		return false
	}
	return c.DateEnd == nil || !date.After(*c.DateEnd)
}
