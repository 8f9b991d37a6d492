package timesheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TimesheetServiceImpl struct {
	txManager database.Transactor
	timesheet.TimesheetRepository
	employee.EmployeeRepository
	analytic.LineRepository
	analyticService analytic.AnalyticService
}

// CreateTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CreateTimesheet(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	// Validate already parsed both dates
	from, _ := validator.IsValidDate(req.DateFrom)
	to, _ := validator.IsValidDate(req.DateTo)

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	var sheet timesheet.Timesheet
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.TimesheetRepository.Create(txCtx, timesheet.Timesheet{
			EmployeeID: emp.ID,
			DateFrom:   from,
			DateTo:     to,
		})
		if err != nil {
			return fmt.Errorf("failed to create timesheet: %w", err)
		}

		lines, err := s.analyticService.CreateLines(txCtx, analytic.CreateLinesRequest{
			TimesheetID: created.ID,
			EmployeeID:  created.EmployeeID,
			DateFrom:    created.DateFrom,
			DateTo:      created.DateTo,
		})
		if err != nil {
			return err
		}

		slog.Info("Timesheet created", "timesheet_id", created.ID, "employee_id", emp.ID, "lines", len(lines))
		sheet = created
		return nil
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return s.GetTimesheet(ctx, sheet.ID)
}

// RefreshLines implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) RefreshLines(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	sheet, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	lines, err := s.analyticService.CreateLines(ctx, analytic.CreateLinesRequest{
		TimesheetID: sheet.ID,
		EmployeeID:  sheet.EmployeeID,
		DateFrom:    sheet.DateFrom,
		DateTo:      sheet.DateTo,
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if len(lines) > 0 {
		slog.Info("Timesheet lines refreshed", "timesheet_id", sheet.ID, "created", len(lines))
	}

	return s.GetTimesheet(ctx, sheet.ID)
}

// GetTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	sheet, lines, err := s.loadSheet(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	lineResponses := make([]analytic.LineResponse, 0, len(lines))
	for _, l := range lines {
		lineResponses = append(lineResponses, analytic.NewLineResponse(l))
	}

	return timesheet.TimesheetResponse{
		ID:           sheet.ID,
		EmployeeID:   sheet.EmployeeID,
		EmployeeName: sheet.EmployeeName,
		DateFrom:     sheet.DateFrom.Format("2006-01-02"),
		DateTo:       sheet.DateTo.Format("2006-01-02"),
		Lines:        lineResponses,
		Summary:      summarize(lines),
	}, nil
}

// loadSheet returns the timesheet with every line of its period.
func (s *TimesheetServiceImpl) loadSheet(ctx context.Context, id string) (timesheet.Timesheet, []analytic.Line, error) {
	sheet, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.Timesheet{}, nil, err
	}

	days := int(sheet.DateTo.Sub(sheet.DateFrom).Hours()/24) + 1
	from := sheet.DateFrom.Format("2006-01-02")
	to := sheet.DateTo.Format("2006-01-02")
	lines, _, err := s.LineRepository.List(ctx, analytic.LineFilter{
		TimesheetID: &sheet.ID,
		StartDate:   &from,
		EndDate:     &to,
		Page:        1,
		Limit:       days,
	})
	if err != nil {
		return timesheet.Timesheet{}, nil, fmt.Errorf("failed to list timesheet lines: %w", err)
	}

	return sheet, lines, nil
}

// summarize totals the lines of a period in decimal, rounded to two places.
func summarize(lines []analytic.Line) timesheet.Summary {
	duty, worked, bonus, night := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range lines {
		duty = duty.Add(decimal.NewFromFloat(l.DutyHours))
		worked = worked.Add(decimal.NewFromFloat(l.WorkedHours))
		bonus = bonus.Add(decimal.NewFromFloat(l.BonusWorkedHours))
		night = night.Add(decimal.NewFromFloat(l.NightShiftWorkedHours))
	}

	return timesheet.Summary{
		Days:                  len(lines),
		DutyHours:             duty.Round(2).InexactFloat64(),
		WorkedHours:           worked.Round(2).InexactFloat64(),
		BonusWorkedHours:      bonus.Round(2).InexactFloat64(),
		NightShiftWorkedHours: night.Round(2).InexactFloat64(),
		Difference:            worked.Sub(duty).Round(2).InexactFloat64(),
	}
}

func NewTimesheetService(
	txManager database.Transactor,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	lineRepo analytic.LineRepository,
	analyticService analytic.AnalyticService,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		txManager:           txManager,
		TimesheetRepository: timesheetRepo,
		EmployeeRepository:  employeeRepo,
		LineRepository:      lineRepo,
		analyticService:     analyticService,
	}
}
