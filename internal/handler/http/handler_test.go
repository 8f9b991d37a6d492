package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/config"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKE SERVICES
// ========================================

type fakeAnalyticService struct {
	analytic.AnalyticService
	recalcDate     time.Time
	recalcEmployee *string
	scanErr        error
	listFilter     analytic.LineFilter
}

func (f *fakeAnalyticService) GetLine(ctx context.Context, id string) (analytic.LineResponse, error) {
	if id != "line-1" {
		return analytic.LineResponse{}, analytic.ErrLineNotFound
	}
	return analytic.LineResponse{ID: id, Date: "2024-03-04", DutyHours: 8, WorkedHours: 2, Difference: -6}, nil
}

func (f *fakeAnalyticService) ListLines(ctx context.Context, filter analytic.LineFilter) (analytic.ListLineResponse, error) {
	f.listFilter = filter
	return analytic.ListLineResponse{
		TotalCount: 40,
		Page:       2,
		Limit:      10,
		TotalPages: 4,
		Lines:      []analytic.LineResponse{{ID: "line-11"}},
	}, nil
}

func (f *fakeAnalyticService) RecalculateLine(ctx context.Context, date time.Time, employeeID *string) ([]analytic.Line, error) {
	f.recalcDate = date
	f.recalcEmployee = employeeID
	return []analytic.Line{{ID: "line-1", Date: date, DutyHours: 4, LeaveDescription: "Half Day"}}, nil
}

func (f *fakeAnalyticService) CheckExceptions(ctx context.Context) (analytic.ExceptionScanResult, error) {
	if f.scanErr != nil {
		return analytic.ExceptionScanResult{}, f.scanErr
	}
	return analytic.ExceptionScanResult{Scanned: 5, Notified: 2, Skipped: 1}, nil
}

type fakeAttendanceService struct {
	clockOut attendance.ClockOutRequest
	err      error
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.AttendanceResponse{ID: "att-1", TimesheetID: req.TimesheetID}, nil
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	f.clockOut = req
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return attendance.AttendanceResponse{ID: req.ID, WorkedHours: 8}, nil
}

func (f *fakeAttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{ID: req.ID}, f.err
}

func (f *fakeAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if id != "att-1" {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return attendance.AttendanceResponse{ID: id}, nil
}

type fakeTimesheetService struct {
	err error
}

func (f *fakeTimesheetService) CreateTimesheet(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if f.err != nil {
		return timesheet.TimesheetResponse{}, f.err
	}
	return timesheet.TimesheetResponse{ID: "ts-1", EmployeeID: req.EmployeeID}, nil
}

func (f *fakeTimesheetService) RefreshLines(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	return timesheet.TimesheetResponse{ID: id}, f.err
}

func (f *fakeTimesheetService) GetTimesheet(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	if id != "ts-1" {
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
	}
	return timesheet.TimesheetResponse{ID: id, Summary: timesheet.Summary{Days: 3}}, nil
}

func (f *fakeTimesheetService) ExportTimesheet(ctx context.Context, id string) (timesheet.ExportFile, error) {
	return timesheet.ExportFile{Filename: "timesheet_" + id + ".xlsx", Content: []byte("PK")}, f.err
}

// ========================================
// HELPERS
// ========================================

type testServer struct {
	handler     http.Handler
	jwt         jwt.Service
	analytics   *fakeAnalyticService
	attendances *fakeAttendanceService
	timesheets  *fakeTimesheetService
}

func newTestServer() *testServer {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	s := &testServer{
		jwt:         jwtService,
		analytics:   &fakeAnalyticService{},
		attendances: &fakeAttendanceService{},
		timesheets:  &fakeTimesheetService{},
	}
	s.handler = NewRouter(
		config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewTimesheetHandler(s.timesheets),
		NewAnalyticHandler(s.analytics),
		NewAttendanceHandler(s.attendances),
	)
	return s
}

func (s *testServer) do(t *testing.T, role user.Role, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("user-1", nil, role)
	require.NoError(t, err)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"total_items"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// ========================================
// TESTS
// ========================================

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytic-lines", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalyticHandler_Get(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleEmployee, http.MethodGet, "/api/v1/analytic-lines/line-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var line analytic.LineResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &line))
	assert.Equal(t, "line-1", line.ID)
	assert.Equal(t, -6.0, line.Difference)

	rec = s.do(t, user.RoleEmployee, http.MethodGet, "/api/v1/analytic-lines/line-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticHandler_List(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleManager, http.MethodGet,
		"/api/v1/analytic-lines?employee_id=emp-1&start_date=2024-03-01&day_checked=false&page=2&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, int64(40), env.Meta.TotalItems)
	assert.Equal(t, 4, env.Meta.TotalPages)

	filter := s.analytics.listFilter
	require.NotNil(t, filter.EmployeeID)
	assert.Equal(t, "emp-1", *filter.EmployeeID)
	require.NotNil(t, filter.StartDate)
	assert.Equal(t, "2024-03-01", *filter.StartDate)
	require.NotNil(t, filter.DayChecked)
	assert.False(t, *filter.DayChecked)
	assert.Nil(t, filter.TimesheetID)
	assert.Equal(t, 10, filter.Limit)
}

func TestAnalyticHandler_Recalculate(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleManager, http.MethodPost, "/api/v1/analytic-lines/recalculate",
		`{"date":"2024-03-04","employee_id":"emp-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, s.analytics.recalcDate.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, s.analytics.recalcEmployee)
	assert.Equal(t, "emp-1", *s.analytics.recalcEmployee)

	var lines []analytic.LineResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "Half Day", lines[0].LeaveDescription)
}

func TestAnalyticHandler_Recalculate_Validation(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleManager, http.MethodPost, "/api/v1/analytic-lines/recalculate", `{"date":"04/03/2024"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "date")
}

func TestAnalyticHandler_Recalculate_EmployeeForbidden(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/analytic-lines/recalculate", `{"date":"2024-03-04"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalyticHandler_CheckExceptions_AmbiguousContract(t *testing.T) {
	s := newTestServer()
	s.analytics.scanErr = &analytic.AmbiguousContractError{EmployeeID: "emp-1", Date: time.Now(), Count: 2}

	rec := s.do(t, user.RoleOwner, http.MethodPost, "/api/v1/analytic-lines/check-exceptions", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAnalyticHandler_CheckExceptions(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleOwner, http.MethodPost, "/api/v1/analytic-lines/check-exceptions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result analytic.ExceptionScanResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Equal(t, 5, result.Scanned)
	assert.Equal(t, 2, result.Notified)
	assert.Equal(t, 1, result.Skipped)

	// Manager may recalculate but not trigger the scan
	rec = s.do(t, user.RoleManager, http.MethodPost, "/api/v1/analytic-lines/check-exceptions", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/attendances/clock-in", `{"timesheet_id":"ts-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var att attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &att))
	assert.Equal(t, "att-1", att.ID)

	rec = s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/attendances/clock-in", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.attendances.err = attendance.ErrAlreadyCheckedIn
	rec = s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/attendances/clock-in", `{"timesheet_id":"ts-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_ClockOut(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/attendances/att-1/clock-out", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "att-1", s.attendances.clockOut.ID)
	assert.Nil(t, s.attendances.clockOut.CheckOut)

	rec = s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/attendances/att-1/clock-out",
		`{"check_out":"2024-03-04T17:00:00Z","bonus_worked_hours":1.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.attendances.clockOut.BonusWorkedHours)
	assert.Equal(t, 1.5, *s.attendances.clockOut.BonusWorkedHours)

	s.attendances.err = attendance.ErrInvalidCheckOut
	rec = s.do(t, user.RoleEmployee, http.MethodPost, "/api/v1/attendances/att-1/clock-out", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_GetAndUpdate(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleManager, http.MethodGet, "/api/v1/attendances/att-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, user.RoleManager, http.MethodGet, "/api/v1/attendances/att-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, user.RoleManager, http.MethodPut, "/api/v1/attendances/att-1", `{"check_out":"2024-03-04T17:00:00Z"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, user.RoleEmployee, http.MethodPut, "/api/v1/attendances/att-1", `{"check_out":"2024-03-04T17:00:00Z"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTimesheetHandler_Create(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleManager, http.MethodPost, "/api/v1/timesheets",
		`{"employee_id":"emp-1","date_from":"2024-03-01","date_to":"2024-03-31"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, user.RoleManager, http.MethodPost, "/api/v1/timesheets",
		`{"employee_id":"emp-1","date_from":"2024-03-31","date_to":"2024-03-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	s.timesheets.err = analytic.ErrNoActiveContract
	rec = s.do(t, user.RoleManager, http.MethodPost, "/api/v1/timesheets",
		`{"employee_id":"emp-1","date_from":"2024-03-01","date_to":"2024-03-31"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTimesheetHandler_GetAndRefresh(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleEmployee, http.MethodGet, "/api/v1/timesheets/ts-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sheet timesheet.TimesheetResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &sheet))
	assert.Equal(t, 3, sheet.Summary.Days)

	rec = s.do(t, user.RoleEmployee, http.MethodGet, "/api/v1/timesheets/ts-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, user.RoleManager, http.MethodPost, "/api/v1/timesheets/ts-1/lines", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTimesheetHandler_Export(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, user.RoleEmployee, http.MethodGet, "/api/v1/timesheets/ts-1/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timesheet_ts-1.xlsx")
	assert.Equal(t, "PK", rec.Body.String())
}
