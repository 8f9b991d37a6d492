package timesheet

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Timesheet"

var exportHeaders = []string{
	"Date",
	"Duty Hours",
	"Worked Hours",
	"Bonus Worked Hours",
	"Night Shift Worked Hours",
	"Difference",
	"Leave",
	"Checked",
}

// ExportTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ExportTimesheet(ctx context.Context, id string) (timesheet.ExportFile, error) {
	sheet, lines, err := s.loadSheet(ctx, id)
	if err != nil {
		return timesheet.ExportFile{}, err
	}

	content, err := buildWorkbook(sheet, lines)
	if err != nil {
		return timesheet.ExportFile{}, fmt.Errorf("failed to build timesheet workbook: %w", err)
	}

	return timesheet.ExportFile{
		Filename: fmt.Sprintf("timesheet_%s_%s.xlsx", sheet.ID, sheet.DateFrom.Format("2006-01")),
		Content:  content,
	}, nil
}

func buildWorkbook(sheet timesheet.Timesheet, lines []analytic.Line) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	employeeName := sheet.EmployeeID
	if sheet.EmployeeName != nil {
		employeeName = *sheet.EmployeeName
	}
	period := fmt.Sprintf("%s - %s", sheet.DateFrom.Format("2006-01-02"), sheet.DateTo.Format("2006-01-02"))
	if err := f.SetSheetRow(exportSheetName, "A1", &[]interface{}{"Employee", employeeName}); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheetName, "A2", &[]interface{}{"Period", period}); err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return nil, err
	}

	const headerRow = 4
	if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", headerRow), &exportHeaders); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle); err != nil {
		return nil, err
	}

	row := headerRow + 1
	for _, l := range lines {
		values := []interface{}{
			l.Date.Format("2006-01-02"),
			l.DutyHours,
			l.WorkedHours,
			l.BonusWorkedHours,
			l.NightShiftWorkedHours,
			l.Difference(),
			l.LeaveDescription,
			l.DayChecked,
		}
		if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		row++
	}

	summary := summarize(lines)
	totals := []interface{}{
		"Total",
		summary.DutyHours,
		summary.WorkedHours,
		summary.BonusWorkedHours,
		summary.NightShiftWorkedHours,
		summary.Difference,
	}
	totalCell := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(exportSheetName, totalCell, &totals); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheetName, totalCell, fmt.Sprintf("%s%d", lastCol, row), totalStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(exportSheetName, "A", "A", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheetName, "B", lastCol, 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
