package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const analyticLineColumns = `
	l.id, l.date, l.timesheet_id, l.contract_id,
	l.duty_hours, l.worked_hours, l.bonus_worked_hours, l.night_shift_worked_hours,
	l.running, l.leave_description, l.day_checked,
	l.created_at, l.updated_at,
	t.employee_id
`

type analyticLineRepository struct {
	db *database.DB
}

func scanAnalyticLine(row pgx.Row) (analytic.Line, error) {
	var l analytic.Line
	err := row.Scan(
		&l.ID, &l.Date, &l.TimesheetID, &l.ContractID,
		&l.DutyHours, &l.WorkedHours, &l.BonusWorkedHours, &l.NightShiftWorkedHours,
		&l.Running, &l.LeaveDescription, &l.DayChecked,
		&l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeID,
	)
	return l, err
}

func collectAnalyticLines(rows pgx.Rows) ([]analytic.Line, error) {
	defer rows.Close()

	var lines []analytic.Line
	for rows.Next() {
		l, err := scanAnalyticLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytic line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analytic lines: %w", err)
	}

	return lines, nil
}

// Create implements analytic.LineRepository.
func (r *analyticLineRepository) Create(ctx context.Context, line analytic.Line) (analytic.Line, error) {
	q := GetQuerier(ctx, r.db)

	if line.ID == "" {
		id, err := newID()
		if err != nil {
			return analytic.Line{}, err
		}
		line.ID = id
	}
	if line.LeaveDescription == "" {
		line.LeaveDescription = analytic.DefaultLeaveDescription
	}
	line.DayChecked = false

	query := `
		INSERT INTO attendance_analytic_lines (
			id, date, timesheet_id, contract_id,
			duty_hours, worked_hours, bonus_worked_hours, night_shift_worked_hours,
			running, leave_description, day_checked
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		line.ID,
		line.Date,
		line.TimesheetID,
		line.ContractID,
		line.DutyHours,
		line.WorkedHours,
		line.BonusWorkedHours,
		line.NightShiftWorkedHours,
		line.Running,
		line.LeaveDescription,
	).Scan(&line.CreatedAt, &line.UpdatedAt)

	if err != nil {
		return analytic.Line{}, fmt.Errorf("failed to create analytic line: %w", err)
	}

	return line, nil
}

// GetByID implements analytic.LineRepository.
func (r *analyticLineRepository) GetByID(ctx context.Context, id string) (analytic.Line, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + analyticLineColumns + `
		FROM attendance_analytic_lines l
		JOIN timesheets t ON t.id = l.timesheet_id
		WHERE l.id = $1
	`

	l, err := scanAnalyticLine(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analytic.Line{}, analytic.ErrLineNotFound
		}
		return analytic.Line{}, fmt.Errorf("failed to get analytic line by ID: %w", err)
	}

	return l, nil
}

// GetByTimesheetAndDate implements analytic.LineRepository.
func (r *analyticLineRepository) GetByTimesheetAndDate(ctx context.Context, timesheetID string, date time.Time) (*analytic.Line, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + analyticLineColumns + `
		FROM attendance_analytic_lines l
		JOIN timesheets t ON t.id = l.timesheet_id
		WHERE l.timesheet_id = $1 AND l.date = $2
		LIMIT 1
	`

	l, err := scanAnalyticLine(q.QueryRow(ctx, query, timesheetID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analytic line by timesheet and date: %w", err)
	}

	return &l, nil
}

// ListByDate implements analytic.LineRepository.
func (r *analyticLineRepository) ListByDate(ctx context.Context, date time.Time, employeeID *string) ([]analytic.Line, error) {
	q := GetQuerier(ctx, r.db)

	where := "l.date = $1"
	args := []interface{}{date.Format("2006-01-02")}
	if employeeID != nil && *employeeID != "" {
		where += " AND t.employee_id = $2"
		args = append(args, *employeeID)
	}

	query := `SELECT ` + analyticLineColumns + `
		FROM attendance_analytic_lines l
		JOIN timesheets t ON t.id = l.timesheet_id
		WHERE ` + where + `
		ORDER BY l.timesheet_id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytic lines by date: %w", err)
	}

	return collectAnalyticLines(rows)
}

// ListUnchecked implements analytic.LineRepository.
func (r *analyticLineRepository) ListUnchecked(ctx context.Context) ([]analytic.Line, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + analyticLineColumns + `
		FROM attendance_analytic_lines l
		JOIN timesheets t ON t.id = l.timesheet_id
		WHERE l.day_checked = FALSE
		ORDER BY l.date, l.id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unchecked analytic lines: %w", err)
	}

	return collectAnalyticLines(rows)
}

// List implements analytic.LineRepository.
func (r *analyticLineRepository) List(ctx context.Context, filter analytic.LineFilter) ([]analytic.Line, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.TimesheetID != nil && *filter.TimesheetID != "" {
		baseWhere += fmt.Sprintf(" AND l.timesheet_id = $%d", argIdx)
		args = append(args, *filter.TimesheetID)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND l.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND l.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.DayChecked != nil {
		baseWhere += fmt.Sprintf(" AND l.day_checked = $%d", argIdx)
		args = append(args, *filter.DayChecked)
		argIdx++
	}

	// Count total
	countQuery := `SELECT COUNT(*)
		FROM attendance_analytic_lines l
		JOIN timesheets t ON t.id = l.timesheet_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analytic lines: %w", err)
	}

	// Build query with pagination
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_analytic_lines l
		JOIN timesheets t ON t.id = l.timesheet_id
		WHERE %s
		ORDER BY l.date ASC, l.timesheet_id ASC
		LIMIT $%d OFFSET $%d
	`, analyticLineColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 31
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analytic lines: %w", err)
	}

	lines, err := collectAnalyticLines(rows)
	if err != nil {
		return nil, 0, err
	}

	return lines, total, nil
}

// UpdateSchedule implements analytic.LineRepository.
func (r *analyticLineRepository) UpdateSchedule(ctx context.Context, line analytic.Line) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_analytic_lines
		SET duty_hours = $1, contract_id = $2, leave_description = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, line.DutyHours, line.ContractID, line.LeaveDescription, line.ID)
	if err != nil {
		return fmt.Errorf("failed to update analytic line schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return analytic.ErrLineNotFound
	}

	return nil
}

// UpdateWorktime implements analytic.LineRepository.
func (r *analyticLineRepository) UpdateWorktime(ctx context.Context, line analytic.Line) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_analytic_lines
		SET worked_hours = $1, bonus_worked_hours = $2, night_shift_worked_hours = $3,
			day_checked = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		line.WorkedHours,
		line.BonusWorkedHours,
		line.NightShiftWorkedHours,
		line.DayChecked,
		line.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update analytic line worktime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return analytic.ErrLineNotFound
	}

	return nil
}

// MarkChecked implements analytic.LineRepository.
func (r *analyticLineRepository) MarkChecked(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_analytic_lines
		SET day_checked = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark analytic line checked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return analytic.ErrLineNotFound
	}

	return nil
}

func NewAnalyticLineRepository(db *database.DB) analytic.LineRepository {
	return &analyticLineRepository{
		db: db,
	}
}
