package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/email"
)

// mailTemplate binds a template key to its subject and embedded file.
type mailTemplate struct {
	Subject string
	File    string
}

var mailTemplates = map[string]mailTemplate{
	"fail_check_out_notification": {
		Subject: "Attendance check required",
		File:    "fail_check_out_notification.html",
	},
}

type lineMailData struct {
	EmployeeName string
	Date         string
	Threshold    float64
	DutyHours    float64
	WorkedHours  float64
	Difference   float64
}

// MailNotifier sends analytic line templates to the employee owning the line.
type MailNotifier struct {
	analytic.LineRepository
	timesheet.TimesheetRepository
	employee.EmployeeRepository
	emailService email.EmailService
	threshold    float64
}

// SendTemplate implements analytic.Notifier. Sending is synchronous.
func (n *MailNotifier) SendTemplate(ctx context.Context, templateKey string, lineID string) error {
	tmpl, ok := mailTemplates[templateKey]
	if !ok {
		return fmt.Errorf("%w: %s", analytic.ErrTemplateNotFound, templateKey)
	}

	line, err := n.LineRepository.GetByID(ctx, lineID)
	if err != nil {
		return err
	}
	sheet, err := n.TimesheetRepository.GetByID(ctx, line.TimesheetID)
	if err != nil {
		return err
	}
	emp, err := n.EmployeeRepository.GetByID(ctx, sheet.EmployeeID)
	if err != nil {
		return err
	}

	if emp.Email == nil || *emp.Email == "" {
		return fmt.Errorf("%w: employee %s", analytic.ErrNoRecipient, emp.ID)
	}

	data := lineMailData{
		EmployeeName: emp.FullName,
		Date:         line.Date.Format("2006-01-02"),
		Threshold:    n.threshold,
		DutyHours:    line.DutyHours,
		WorkedHours:  line.WorkedHours,
		Difference:   line.Difference(),
	}
	if err := n.emailService.SendTemplate(*emp.Email, tmpl.Subject, tmpl.File, data); err != nil {
		return fmt.Errorf("failed to send %s: %w", templateKey, err)
	}

	slog.Info("Analytic line notification sent", "line_id", line.ID, "employee_id", emp.ID, "template", templateKey)
	return nil
}

func NewMailNotifier(
	lineRepo analytic.LineRepository,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
	threshold float64,
) *MailNotifier {
	return &MailNotifier{
		LineRepository:      lineRepo,
		TimesheetRepository: timesheetRepo,
		EmployeeRepository:  employeeRepo,
		emailService:        emailService,
		threshold:           threshold,
	}
}
