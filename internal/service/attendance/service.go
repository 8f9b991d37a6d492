package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	txManager database.Transactor
	attendance.AttendanceRepository
	timesheet.TimesheetRepository
	analyticService analytic.AnalyticService
	now             func() time.Time
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                    att.ID,
		TimesheetID:           att.TimesheetID,
		EmployeeID:            att.EmployeeID,
		AnalyticLineID:        att.AnalyticLineID,
		CheckIn:               att.CheckIn.UTC().Format(time.RFC3339),
		CheckOut:              timePtrToString(att.CheckOut),
		WorkedHours:           att.WorkedHours,
		BonusWorkedHours:      att.BonusWorkedHours,
		NightShiftWorkedHours: att.NightShiftWorkedHours,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := a.now().UTC()
	if req.CheckInTime != nil {
		checkIn = req.CheckInTime.UTC()
	}

	var result attendance.Attendance
	err := a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		sheet, err := a.TimesheetRepository.GetByID(txCtx, req.TimesheetID)
		if err != nil {
			return err
		}

		open, err := a.AttendanceRepository.GetOpenSession(txCtx, sheet.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		created, err := a.AttendanceRepository.Create(txCtx, attendance.Attendance{
			TimesheetID: sheet.ID,
			EmployeeID:  sheet.EmployeeID,
			CheckIn:     checkIn,
		})
		if err != nil {
			return err
		}

		if _, err := a.analyticService.RecalculateLineWorktime(txCtx, created, attendance.Change{CheckIn: &checkIn}); err != nil {
			return fmt.Errorf("failed to recalculate analytic line: %w", err)
		}

		result, err = a.AttendanceRepository.GetByID(txCtx, created.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(result), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut := a.now().UTC()
	if req.CheckOutTime != nil {
		checkOut = req.CheckOutTime.UTC()
	}

	var result attendance.Attendance
	err := a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		event, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !event.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}
		if !checkOut.After(event.CheckIn) {
			return attendance.ErrInvalidCheckOut
		}

		event.CheckOut = &checkOut
		event.WorkedHours = attendance.WorkedHours(event.CheckIn, checkOut)
		if req.BonusWorkedHours != nil {
			event.BonusWorkedHours = *req.BonusWorkedHours
		}
		if req.NightShiftWorkedHours != nil {
			event.NightShiftWorkedHours = *req.NightShiftWorkedHours
		}

		if err := a.AttendanceRepository.Update(txCtx, event); err != nil {
			return err
		}

		if _, err := a.analyticService.RecalculateLineWorktime(txCtx, event, attendance.Change{CheckOut: &checkOut}); err != nil {
			return fmt.Errorf("failed to recalculate analytic line: %w", err)
		}

		result, err = a.AttendanceRepository.GetByID(txCtx, event.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(result), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var change attendance.Change
	if req.CheckInTime != nil {
		t := req.CheckInTime.UTC()
		change.CheckIn = &t
	}
	if req.CheckOutTime != nil {
		t := req.CheckOutTime.UTC()
		change.CheckOut = &t
	}

	var result attendance.Attendance
	err := a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		event, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if change.CheckIn != nil {
			event.CheckIn = *change.CheckIn
		}
		if change.CheckOut != nil {
			event.CheckOut = change.CheckOut
		}
		if event.CheckOut != nil {
			if !event.CheckOut.After(event.CheckIn) {
				return attendance.ErrInvalidCheckOut
			}
			event.WorkedHours = attendance.WorkedHours(event.CheckIn, *event.CheckOut)
		}
		if req.BonusWorkedHours != nil {
			event.BonusWorkedHours = *req.BonusWorkedHours
		}
		if req.NightShiftWorkedHours != nil {
			event.NightShiftWorkedHours = *req.NightShiftWorkedHours
		}

		if err := a.AttendanceRepository.Update(txCtx, event); err != nil {
			return err
		}

		if _, err := a.analyticService.RecalculateLineWorktime(txCtx, event, change); err != nil {
			return fmt.Errorf("failed to recalculate analytic line: %w", err)
		}

		result, err = a.AttendanceRepository.GetByID(txCtx, event.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(result), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapAttendanceToResponse(att), nil
}

func NewAttendanceService(
	txManager database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	timesheetRepo timesheet.TimesheetRepository,
	analyticService analytic.AnalyticService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txManager:            txManager,
		AttendanceRepository: attendanceRepo,
		TimesheetRepository:  timesheetRepo,
		analyticService:      analyticService,
		now:                  time.Now,
	}
}
