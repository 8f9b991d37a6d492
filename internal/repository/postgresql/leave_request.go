package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

// GetLeaveStatus implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) GetLeaveStatus(ctx context.Context, employeeID string, date time.Time) (leave.LeaveStatus, error) {
	q := GetQuerier(ctx, r.db)

	// Full day leave wins over a half day one on the same date
	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
			   lr.duration_type, lr.status, lr.created_at, lr.updated_at,
			   lt.name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.employee_id = $1
		  AND lr.status = 'approved'
		  AND lr.start_date <= $2
		  AND lr.end_date >= $2
		ORDER BY (lr.duration_type = 'full_day') DESC, lr.created_at
		LIMIT 1
	`

	var lr leave.LeaveRequest
	err := q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")).Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate,
		&lr.DurationType, &lr.Status, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveStatus{}, nil
		}
		return leave.LeaveStatus{}, fmt.Errorf("failed to get leave status: %w", err)
	}

	return leave.LeaveStatus{
		Leave:    &lr,
		Coverage: lr.DurationType.Coverage(),
	}, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRequestRepositoryImpl{db: db}
}
