package cron

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
)

// AnalyticJobs contains attendance analytic cron jobs
type AnalyticJobs struct {
	analyticService analytic.AnalyticService
	schedule        string
}

// NewAnalyticJobs creates analytic cron jobs running on schedule
func NewAnalyticJobs(analyticService analytic.AnalyticService, schedule string) *AnalyticJobs {
	return &AnalyticJobs{
		analyticService: analyticService,
		schedule:        schedule,
	}
}

// RegisterJobs registers all analytic cron jobs
func (j *AnalyticJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("check_attendance_exceptions", j.schedule, j.CheckAttendanceExceptions)
}

// CheckAttendanceExceptions notifies employees about past days whose worked
// hours stray too far from their duty hours.
func (j *AnalyticJobs) CheckAttendanceExceptions(ctx context.Context) error {
	slog.Info("Cron: Starting attendance exception scan")

	result, err := j.analyticService.CheckExceptions(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cron: Attendance exception scan completed", "scanned", result.Scanned, "notified", result.Notified, "skipped", result.Skipped)
	return nil
}
