package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgtype"
)

type workCalendarRepositoryImpl struct {
	db *database.DB
}

// clockOffset converts a TIME column to its offset from midnight.
func clockOffset(t pgtype.Time) time.Duration {
	return time.Duration(t.Microseconds) * time.Microsecond
}

func optionalClockOffset(t pgtype.Time) *time.Duration {
	if !t.Valid {
		return nil
	}
	d := clockOffset(t)
	return &d
}

// GetTimesByDay implements schedule.WorkCalendarRepository.
func (r *workCalendarRepositoryImpl) GetTimesByDay(ctx context.Context, calendarID string, date time.Time) ([]schedule.WorkCalendarTime, error) {
	times, err := r.listTimes(ctx, "work_calendar_id = $1 AND day_of_week = $2", calendarID, schedule.DayOfWeek(date))
	if err != nil || len(times) > 0 {
		return times, err
	}

	// No slot that weekday: tell a day off apart from a dangling calendar reference
	var exists bool
	q := GetQuerier(ctx, r.db)
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM work_calendars WHERE id = $1)`, calendarID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check work calendar: %w", err)
	}
	if !exists {
		return nil, schedule.ErrWorkCalendarNotFound
	}
	return nil, nil
}

func (r *workCalendarRepositoryImpl) listTimes(ctx context.Context, where string, args ...interface{}) ([]schedule.WorkCalendarTime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_calendar_id, day_of_week, clock_in_time, break_start_time,
			   break_end_time, clock_out_time, is_next_day_checkout, created_at, updated_at
		FROM work_calendar_times
		WHERE ` + where + `
		ORDER BY day_of_week, clock_in_time
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work calendar times: %w", err)
	}
	defer rows.Close()

	var times []schedule.WorkCalendarTime
	for rows.Next() {
		var (
			t                    schedule.WorkCalendarTime
			clockIn, clockOut    pgtype.Time
			breakStart, breakEnd pgtype.Time
		)
		err := rows.Scan(
			&t.ID, &t.WorkCalendarID, &t.DayOfWeek, &clockIn, &breakStart,
			&breakEnd, &clockOut, &t.IsNextDayCheckout, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work calendar time: %w", err)
		}
		t.ClockInTime = clockOffset(clockIn)
		t.ClockOutTime = clockOffset(clockOut)
		t.BreakStartTime = optionalClockOffset(breakStart)
		t.BreakEndTime = optionalClockOffset(breakEnd)
		times = append(times, t)
	}

	return times, rows.Err()
}

func NewWorkCalendarRepository(db *database.DB) schedule.WorkCalendarRepository {
	return &workCalendarRepositoryImpl{db: db}
}
