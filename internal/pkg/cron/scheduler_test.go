package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(time.UTC)

	require.NoError(t, s.AddJob("nightly", "0 1 * * *", func(ctx context.Context) error { return nil }))
	require.Len(t, s.jobs, 1)
	assert.Equal(t, "nightly", s.jobs[0].Name)
	assert.Equal(t, "0 1 * * *", s.jobs[0].Schedule)
}

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := NewScheduler(nil)

	err := s.AddJob("broken", "every day", func(ctx context.Context) error { return nil })

	assert.Error(t, err)
	assert.Empty(t, s.jobs)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(time.UTC)
	var ran []string
	require.NoError(t, s.AddJob("first", "@daily", func(ctx context.Context) error {
		ran = append(ran, "first")
		return errors.New("boom")
	}))
	require.NoError(t, s.AddJob("second", "@hourly", func(ctx context.Context) error {
		ran = append(ran, "second")
		return nil
	}))

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestScheduler_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	s := NewScheduler(loc)
	require.NoError(t, s.AddJob("nightly", "0 1 * * *", func(ctx context.Context) error { return nil }))

	entries := s.cron.Entries()
	require.Len(t, entries, 1)

	// 2024-03-04 00:30 Jakarta is before the 01:00 run of that day
	from := time.Date(2024, 3, 4, 0, 30, 0, 0, loc)
	next := entries[0].Schedule.Next(from)
	assert.True(t, next.Equal(time.Date(2024, 3, 4, 1, 0, 0, 0, loc)), "next run %s", next)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC)
	require.NoError(t, s.AddJob("nightly", "@daily", func(ctx context.Context) error { return nil }))

	s.Start()
	s.Stop()

	assert.Error(t, s.ctx.Err())
}

type fakeAnalyticService struct {
	analytic.AnalyticService
	calls int
	err   error
}

func (f *fakeAnalyticService) CheckExceptions(ctx context.Context) (analytic.ExceptionScanResult, error) {
	f.calls++
	return analytic.ExceptionScanResult{Scanned: 3, Notified: 1}, f.err
}

func TestAnalyticJobs(t *testing.T) {
	svc := &fakeAnalyticService{}
	s := NewScheduler(time.UTC)
	jobs := NewAnalyticJobs(svc, "0 1 * * *")

	require.NoError(t, jobs.RegisterJobs(s))
	require.Len(t, s.jobs, 1)
	assert.Equal(t, "check_attendance_exceptions", s.jobs[0].Name)

	s.RunOnce(context.Background())
	assert.Equal(t, 1, svc.calls)
}

func TestAnalyticJobs_PropagatesError(t *testing.T) {
	scanErr := errors.New("scan failed")
	jobs := NewAnalyticJobs(&fakeAnalyticService{err: scanErr}, "0 1 * * *")

	err := jobs.CheckAttendanceExceptions(context.Background())

	assert.ErrorIs(t, err, scanErr)
}
