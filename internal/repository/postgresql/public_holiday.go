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

type publicHolidayRepositoryImpl struct {
	db *database.DB
}

// GetByDate implements leave.PublicHolidayRepository.
func (r *publicHolidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*leave.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, date, created_at, updated_at
		FROM public_holidays
		WHERE date = $1
		ORDER BY created_at
		LIMIT 1
	`

	var h leave.PublicHoliday
	err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(
		&h.ID, &h.CompanyID, &h.Name, &h.Date, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get public holiday: %w", err)
	}

	return &h, nil
}

func NewPublicHolidayRepository(db *database.DB) leave.PublicHolidayRepository {
	return &publicHolidayRepositoryImpl{db: db}
}
