package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/contract"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
)

type contractRepositoryImpl struct {
	db *database.DB
}

// FindActive implements contract.ContractRepository.
func (r *contractRepositoryImpl) FindActive(ctx context.Context, employeeID string, date time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, state, date_start, date_end,
			   rate_per_hour, work_calendar_id, created_at, updated_at
		FROM contracts
		WHERE employee_id = $1
		  AND state <> 'cancel'
		  AND date_start <= $2
		  AND (date_end IS NULL OR date_end >= $2)
		ORDER BY date_start
	`

	rows, err := q.Query(ctx, query, employeeID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query active contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		var c contract.Contract
		err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.Name, &c.State, &c.DateStart, &c.DateEnd,
			&c.RatePerHour, &c.WorkCalendarID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}

	return contracts, rows.Err()
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepositoryImpl{db: db}
}
