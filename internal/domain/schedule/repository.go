package schedule

import (
	"context"
	"time"
)

type WorkCalendarRepository interface {
	// GetTimesByDay returns the working slots of the calendar for the weekday
	// of date. An unknown calendar returns ErrWorkCalendarNotFound.
	GetTimesByDay(ctx context.Context, calendarID string, date time.Time) ([]WorkCalendarTime, error)
}
