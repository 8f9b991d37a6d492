package schedule

import "errors"

var (
	ErrWorkCalendarNotFound = errors.New("work calendar not found")
)
