package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, timesheetID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, timesheet_id, employee_id, analytic_line_id,
			   check_in, check_out, worked_hours, bonus_worked_hours, night_shift_worked_hours,
			   created_at, updated_at
		FROM attendances
		WHERE timesheet_id = $1
		  AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, timesheetID).Scan(
		&att.ID, &att.TimesheetID, &att.EmployeeID, &att.AnalyticLineID,
		&att.CheckIn, &att.CheckOut, &att.WorkedHours, &att.BonusWorkedHours, &att.NightShiftWorkedHours,
		&att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if newAttendance.ID == "" {
		id, err := newID()
		if err != nil {
			return attendance.Attendance{}, err
		}
		newAttendance.ID = id
	}

	query := `
		INSERT INTO attendances (
			id, timesheet_id, employee_id, analytic_line_id,
			check_in, check_out, worked_hours, bonus_worked_hours, night_shift_worked_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.TimesheetID,
		newAttendance.EmployeeID,
		newAttendance.AnalyticLineID,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.WorkedHours,
		newAttendance.BonusWorkedHours,
		newAttendance.NightShiftWorkedHours,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, timesheet_id, employee_id, analytic_line_id,
			   check_in, check_out, worked_hours, bonus_worked_hours, night_shift_worked_hours,
			   created_at, updated_at
		FROM attendances
		WHERE id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.TimesheetID, &att.EmployeeID, &att.AnalyticLineID,
		&att.CheckIn, &att.CheckOut, &att.WorkedHours, &att.BonusWorkedHours, &att.NightShiftWorkedHours,
		&att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, worked_hours = $3,
			bonus_worked_hours = $4, night_shift_worked_hours = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		att.CheckIn,
		att.CheckOut,
		att.WorkedHours,
		att.BonusWorkedHours,
		att.NightShiftWorkedHours,
		att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByAnalyticLine implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByAnalyticLine(ctx context.Context, lineID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, timesheet_id, employee_id, analytic_line_id,
			   check_in, check_out, worked_hours, bonus_worked_hours, night_shift_worked_hours,
			   created_at, updated_at
		FROM attendances
		WHERE analytic_line_id = $1
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by analytic line: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.TimesheetID, &att.EmployeeID, &att.AnalyticLineID,
			&att.CheckIn, &att.CheckOut, &att.WorkedHours, &att.BonusWorkedHours, &att.NightShiftWorkedHours,
			&att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}

// LinkAnalyticLine implements attendance.AttendanceRepository.
func (a *attendanceRepository) LinkAnalyticLine(ctx context.Context, id string, lineID string) error {
	q := GetQuerier(ctx, a.db)

	// An event keeps the first line it was attributed to
	query := `
		UPDATE attendances
		SET analytic_line_id = $1, updated_at = NOW()
		WHERE id = $2 AND analytic_line_id IS NULL
	`

	if _, err := q.Exec(ctx, query, lineID, id); err != nil {
		return fmt.Errorf("failed to link attendance to analytic line: %w", err)
	}

	return nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}
