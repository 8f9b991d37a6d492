package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, sheet timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	if sheet.ID == "" {
		id, err := newID()
		if err != nil {
			return timesheet.Timesheet{}, err
		}
		sheet.ID = id
	}

	query := `
		INSERT INTO timesheets (id, employee_id, date_from, date_to)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sheet.ID,
		sheet.EmployeeID,
		sheet.DateFrom.Format("2006-01-02"),
		sheet.DateTo.Format("2006-01-02"),
	).Scan(&sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return sheet, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.employee_id, t.date_from, t.date_to, t.created_at, t.updated_at,
			   e.full_name AS employee_name
		FROM timesheets t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1
	`

	var sheet timesheet.Timesheet
	err := q.QueryRow(ctx, query, id).Scan(
		&sheet.ID, &sheet.EmployeeID, &sheet.DateFrom, &sheet.DateTo, &sheet.CreatedAt, &sheet.UpdatedAt,
		&sheet.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	return sheet, nil
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}
