package analytic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/config"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/contract"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
)

type AnalyticServiceImpl struct {
	txManager database.Transactor
	analytic.LineRepository
	attendance.AttendanceRepository
	contract.ContractRepository
	schedule.WorkCalendarRepository
	leave.LeaveRepository
	leave.PublicHolidayRepository
	notifier analytic.Notifier

	cfg config.AnalyticConfig
	loc *time.Location
	now func() time.Time
}

// civilDate strips the clock and zone from t, keeping its calendar day.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculateDutyHours implements analytic.AnalyticService.
func (s *AnalyticServiceImpl) CalculateDutyHours(ctx context.Context, req analytic.DutyRequest) (analytic.DutyHours, error) {
	date := civilDate(req.Date)

	contracts, err := s.ContractRepository.FindActive(ctx, req.EmployeeID, date)
	if err != nil {
		return analytic.DutyHours{}, fmt.Errorf("failed to find active contract: %w", err)
	}
	if len(contracts) > 1 {
		slog.Error("Ambiguous active contract", "employee_id", req.EmployeeID, "date", date.Format("2006-01-02"), "count", len(contracts))
		return analytic.DutyHours{}, &analytic.AmbiguousContractError{
			EmployeeID: req.EmployeeID,
			Date:       date,
			Count:      len(contracts),
		}
	}

	var active *contract.Contract
	if len(contracts) == 1 {
		active = &contracts[0]
	}

	leaveStatus, err := s.LeaveRepository.GetLeaveStatus(ctx, req.EmployeeID, date)
	if err != nil {
		return analytic.DutyHours{}, fmt.Errorf("failed to get leave status: %w", err)
	}

	holiday, err := s.PublicHolidayRepository.GetByDate(ctx, date)
	if err != nil {
		return analytic.DutyHours{}, fmt.Errorf("failed to get public holiday: %w", err)
	}

	result := analytic.DutyHours{
		Contract:      active,
		Leave:         leaveStatus,
		PublicHoliday: holiday,
	}

	if active.IsFlatRate() {
		return result, nil
	}

	if active.IsCancelled() {
		slog.Warn("Cancelled contract returned as active, contract reference may be stale",
			"employee_id", req.EmployeeID, "contract_id", active.ID, "date", date.Format("2006-01-02"))
		return result, nil
	}

	nominal, err := s.nominalHours(ctx, active, date)
	if err != nil {
		return analytic.DutyHours{}, err
	}

	switch {
	case holiday != nil:
		result.Hours = 0
	case leaveStatus.Coverage > 0:
		result.Hours = nominal * (1 - leaveStatus.Coverage)
	default:
		result.Hours = nominal
	}

	return result, nil
}

// nominalHours reads the calendar hours of the contract for date. A missing
// contract or calendar counts as a day without working time.
func (s *AnalyticServiceImpl) nominalHours(ctx context.Context, c *contract.Contract, date time.Time) (float64, error) {
	if c == nil || c.WorkCalendarID == nil {
		return 0, nil
	}

	times, err := s.WorkCalendarRepository.GetTimesByDay(ctx, *c.WorkCalendarID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrWorkCalendarNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get work calendar times: %w", err)
	}

	return schedule.NominalHours(times), nil
}

// CreateLines implements analytic.AnalyticService. It returns the lines it
// created; days that already had a line are left as they are.
func (s *AnalyticServiceImpl) CreateLines(ctx context.Context, req analytic.CreateLinesRequest) ([]analytic.Line, error) {
	from, to := civilDate(req.DateFrom), civilDate(req.DateTo)
	if from.After(to) {
		return nil, fmt.Errorf("invalid line period %s..%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	var created []analytic.Line
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			existing, err := s.LineRepository.GetByTimesheetAndDate(txCtx, req.TimesheetID, day)
			if err != nil {
				return fmt.Errorf("failed to check existing line: %w", err)
			}
			if existing != nil {
				continue
			}

			duty, err := s.CalculateDutyHours(txCtx, analytic.DutyRequest{
				TimesheetID: req.TimesheetID,
				EmployeeID:  req.EmployeeID,
				Date:        day,
			})
			if err != nil {
				return err
			}

			if duty.Contract == nil {
				return fmt.Errorf("%w: employee %s on %s", analytic.ErrNoActiveContract, req.EmployeeID, day.Format("2006-01-02"))
			}

			hours := duty.Hours
			if duty.Leave.Coverage > 0 && s.cfg.ReapplyLeaveDiscount {
				discounted := hours - hours*duty.Leave.Coverage
				slog.Warn("Applying leave discount on materialized duty hours",
					"timesheet_id", req.TimesheetID, "date", day.Format("2006-01-02"),
					"coverage", duty.Leave.Coverage, "duty_hours", hours, "discounted", discounted)
				hours = discounted
			}
			if duty.Contract.IsFlatRate() {
				hours = 0
			}

			line, err := s.LineRepository.Create(txCtx, analytic.Line{
				Date:             day,
				TimesheetID:      req.TimesheetID,
				ContractID:       duty.ContractID(),
				DutyHours:        hours,
				LeaveDescription: duty.LeaveDescription(),
				DayChecked:       false,
			})
			if err != nil {
				return fmt.Errorf("failed to create analytic line: %w", err)
			}
			created = append(created, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Materialized analytic lines", "timesheet_id", req.TimesheetID, "created", len(created))
	return created, nil
}

// RecalculateLine implements analytic.AnalyticService.
func (s *AnalyticServiceImpl) RecalculateLine(ctx context.Context, date time.Time, employeeID *string) ([]analytic.Line, error) {
	day := civilDate(date)

	var updated []analytic.Line
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		lines, err := s.LineRepository.ListByDate(txCtx, day, employeeID)
		if err != nil {
			return fmt.Errorf("failed to list analytic lines: %w", err)
		}

		for _, line := range lines {
			if line.EmployeeID == nil {
				return fmt.Errorf("analytic line %s has no employee", line.ID)
			}

			duty, err := s.CalculateDutyHours(txCtx, analytic.DutyRequest{
				TimesheetID: line.TimesheetID,
				EmployeeID:  *line.EmployeeID,
				Date:        line.Date,
			})
			if err != nil {
				return err
			}

			line.DutyHours = duty.Hours
			line.ContractID = duty.ContractID()
			line.LeaveDescription = duty.LeaveDescription()

			if err := s.LineRepository.UpdateSchedule(txCtx, line); err != nil {
				return fmt.Errorf("failed to update analytic line: %w", err)
			}
			updated = append(updated, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RecalculateLineWorktime implements analytic.AnalyticService. The caller is
// expected to have persisted the event within the transaction bound to ctx.
func (s *AnalyticServiceImpl) RecalculateLineWorktime(ctx context.Context, event attendance.Attendance, change attendance.Change) (*analytic.Line, error) {
	if change.IsEmpty() {
		return nil, nil
	}

	checkIn := event.CheckIn
	if change.CheckIn != nil {
		checkIn = *change.CheckIn
	}
	checkOut := event.CheckOut
	if change.CheckOut != nil {
		checkOut = change.CheckOut
	}

	day := civilDate(checkIn.In(s.loc))

	line, err := s.LineRepository.GetByTimesheetAndDate(ctx, event.TimesheetID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get analytic line: %w", err)
	}

	if line == nil {
		duty, err := s.CalculateDutyHours(ctx, analytic.DutyRequest{
			TimesheetID: event.TimesheetID,
			EmployeeID:  event.EmployeeID,
			Date:        day,
		})
		if err != nil {
			return nil, err
		}

		newLine, err := s.LineRepository.Create(ctx, analytic.Line{
			Date:             day,
			TimesheetID:      event.TimesheetID,
			ContractID:       duty.ContractID(),
			DutyHours:        duty.Hours,
			LeaveDescription: duty.LeaveDescription(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create analytic line: %w", err)
		}
		line = &newLine
	}

	if event.AnalyticLineID == nil {
		if err := s.AttendanceRepository.LinkAnalyticLine(ctx, event.ID, line.ID); err != nil {
			return nil, err
		}
		event.AnalyticLineID = &line.ID
	}

	if checkOut == nil {
		return line, nil
	}

	linked, err := s.AttendanceRepository.ListByAnalyticLine(ctx, line.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line attendances: %w", err)
	}

	var worked, bonus, night float64
	for _, att := range linked {
		if att.ID == event.ID {
			worked += attendance.WorkedHours(checkIn, *checkOut)
			bonus += event.BonusWorkedHours
			night += event.NightShiftWorkedHours
			continue
		}
		worked += att.WorkedHours
		bonus += att.BonusWorkedHours
		night += att.NightShiftWorkedHours
	}

	line.WorkedHours = worked
	line.BonusWorkedHours = bonus
	line.NightShiftWorkedHours = night
	line.DayChecked = false

	if err := s.LineRepository.UpdateWorktime(ctx, *line); err != nil {
		return nil, fmt.Errorf("failed to update analytic line worktime: %w", err)
	}

	return line, nil
}

// CheckExceptions implements analytic.AnalyticService. A failed send stops
// the scan and leaves that line unchecked for the next run.
func (s *AnalyticServiceImpl) CheckExceptions(ctx context.Context) (analytic.ExceptionScanResult, error) {
	var result analytic.ExceptionScanResult

	lines, err := s.LineRepository.ListUnchecked(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list unchecked analytic lines: %w", err)
	}

	today := civilDate(s.now().In(s.loc))

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if math.Abs(line.Difference()) > s.cfg.ExceptionThreshold && civilDate(line.Date).Before(today) {
			err := s.notifier.SendTemplate(ctx, s.cfg.ExceptionTemplate, line.ID)
			switch {
			case errors.Is(err, analytic.ErrNoRecipient):
				result.Skipped++
				slog.Warn("Skipped attendance exception notification", "line_id", line.ID, "error", err)
			case err != nil:
				return result, fmt.Errorf("failed to send exception notification for line %s: %w", line.ID, err)
			default:
				result.Notified++
				slog.Info("Sent attendance exception notification",
					"line_id", line.ID, "date", line.Date.Format("2006-01-02"), "difference", line.Difference())
			}
		}

		if err := s.LineRepository.MarkChecked(ctx, line.ID); err != nil {
			return result, fmt.Errorf("failed to mark analytic line checked: %w", err)
		}
		result.Scanned++
	}

	slog.Info("Attendance exception scan finished",
		"scanned", result.Scanned, "notified", result.Notified, "skipped", result.Skipped)
	return result, nil
}

// GetLine implements analytic.AnalyticService.
func (s *AnalyticServiceImpl) GetLine(ctx context.Context, id string) (analytic.LineResponse, error) {
	line, err := s.LineRepository.GetByID(ctx, id)
	if err != nil {
		return analytic.LineResponse{}, err
	}
	return analytic.NewLineResponse(line), nil
}

// ListLines implements analytic.AnalyticService.
func (s *AnalyticServiceImpl) ListLines(ctx context.Context, filter analytic.LineFilter) (analytic.ListLineResponse, error) {
	if err := filter.Validate(); err != nil {
		return analytic.ListLineResponse{}, err
	}

	lines, total, err := s.LineRepository.List(ctx, filter)
	if err != nil {
		return analytic.ListLineResponse{}, fmt.Errorf("failed to list analytic lines: %w", err)
	}

	responses := make([]analytic.LineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, analytic.NewLineResponse(line))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return analytic.ListLineResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Lines:      responses,
	}, nil
}

func NewAnalyticService(
	txManager database.Transactor,
	lineRepo analytic.LineRepository,
	attendanceRepo attendance.AttendanceRepository,
	contractRepo contract.ContractRepository,
	workCalendarRepo schedule.WorkCalendarRepository,
	leaveRepo leave.LeaveRepository,
	publicHolidayRepo leave.PublicHolidayRepository,
	notifier analytic.Notifier,
	cfg config.AnalyticConfig,
) analytic.AnalyticService {
	return &AnalyticServiceImpl{
		txManager:               txManager,
		LineRepository:          lineRepo,
		AttendanceRepository:    attendanceRepo,
		ContractRepository:      contractRepo,
		WorkCalendarRepository:  workCalendarRepo,
		LeaveRepository:         leaveRepo,
		PublicHolidayRepository: publicHolidayRepo,
		notifier:                notifier,
		cfg:                     cfg,
		loc:                     cfg.Location(),
		now:                     time.Now,
	}
}
