package analytic

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-analytic-go/internal/config"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/analytic"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/contract"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

type passThroughTx struct{}

func (passThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- lines ----

type fakeLineRepo struct {
	lines     map[string]analytic.Line
	employees map[string]string // timesheet id -> employee id
	seq       int
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{lines: map[string]analytic.Line{}, employees: map[string]string{}}
}

func (r *fakeLineRepo) withEmployee(l analytic.Line) analytic.Line {
	if emp, ok := r.employees[l.TimesheetID]; ok {
		l.EmployeeID = &emp
	}
	return l
}

func (r *fakeLineRepo) sorted() []analytic.Line {
	out := make([]analytic.Line, 0, len(r.lines))
	for _, l := range r.lines {
		out = append(out, r.withEmployee(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (r *fakeLineRepo) Create(ctx context.Context, line analytic.Line) (analytic.Line, error) {
	for _, l := range r.lines {
		if l.TimesheetID == line.TimesheetID && l.Date.Equal(line.Date) {
			return analytic.Line{}, errors.New("duplicate line for timesheet and date")
		}
	}
	r.seq++
	if line.ID == "" {
		line.ID = "line-" + strconv.Itoa(r.seq)
	}
	if line.LeaveDescription == "" {
		line.LeaveDescription = analytic.DefaultLeaveDescription
	}
	line.DayChecked = false
	r.lines[line.ID] = line
	return r.withEmployee(line), nil
}

func (r *fakeLineRepo) GetByID(ctx context.Context, id string) (analytic.Line, error) {
	l, ok := r.lines[id]
	if !ok {
		return analytic.Line{}, analytic.ErrLineNotFound
	}
	return r.withEmployee(l), nil
}

func (r *fakeLineRepo) GetByTimesheetAndDate(ctx context.Context, timesheetID string, date time.Time) (*analytic.Line, error) {
	for _, l := range r.lines {
		if l.TimesheetID == timesheetID && l.Date.Format(dateLayout) == date.Format(dateLayout) {
			l = r.withEmployee(l)
			return &l, nil
		}
	}
	return nil, nil
}

func (r *fakeLineRepo) ListByDate(ctx context.Context, date time.Time, employeeID *string) ([]analytic.Line, error) {
	var out []analytic.Line
	for _, l := range r.sorted() {
		if l.Date.Format(dateLayout) != date.Format(dateLayout) {
			continue
		}
		if employeeID != nil && (l.EmployeeID == nil || *l.EmployeeID != *employeeID) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLineRepo) ListUnchecked(ctx context.Context) ([]analytic.Line, error) {
	var out []analytic.Line
	for _, l := range r.sorted() {
		if !l.DayChecked {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) List(ctx context.Context, filter analytic.LineFilter) ([]analytic.Line, int64, error) {
	var matched []analytic.Line
	for _, l := range r.sorted() {
		if filter.TimesheetID != nil && l.TimesheetID != *filter.TimesheetID {
			continue
		}
		if filter.DayChecked != nil && l.DayChecked != *filter.DayChecked {
			continue
		}
		matched = append(matched, l)
	}
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (r *fakeLineRepo) UpdateSchedule(ctx context.Context, line analytic.Line) error {
	l, ok := r.lines[line.ID]
	if !ok {
		return analytic.ErrLineNotFound
	}
	l.DutyHours = line.DutyHours
	l.ContractID = line.ContractID
	l.LeaveDescription = line.LeaveDescription
	r.lines[line.ID] = l
	return nil
}

func (r *fakeLineRepo) UpdateWorktime(ctx context.Context, line analytic.Line) error {
	l, ok := r.lines[line.ID]
	if !ok {
		return analytic.ErrLineNotFound
	}
	l.WorkedHours = line.WorkedHours
	l.BonusWorkedHours = line.BonusWorkedHours
	l.NightShiftWorkedHours = line.NightShiftWorkedHours
	l.DayChecked = line.DayChecked
	r.lines[line.ID] = l
	return nil
}

func (r *fakeLineRepo) MarkChecked(ctx context.Context, id string) error {
	l, ok := r.lines[id]
	if !ok {
		return analytic.ErrLineNotFound
	}
	l.DayChecked = true
	r.lines[id] = l
	return nil
}

// ---- attendances ----

type fakeAttendanceRepo struct {
	events map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{events: map[string]attendance.Attendance{}}
}

func (r *fakeAttendanceRepo) put(a attendance.Attendance) attendance.Attendance {
	r.events[a.ID] = a
	return a
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if a.ID == "" {
		a.ID = "att-" + strconv.Itoa(len(r.events)+1)
	}
	r.events[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, ok := r.events[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	prev, ok := r.events[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.AnalyticLineID = prev.AnalyticLineID
	r.events[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) GetOpenSession(ctx context.Context, timesheetID string) (*attendance.Attendance, error) {
	for _, a := range r.events {
		if a.TimesheetID == timesheetID && a.CheckOut == nil {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) ListByAnalyticLine(ctx context.Context, lineID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range r.events {
		if a.AnalyticLineID != nil && *a.AnalyticLineID == lineID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (r *fakeAttendanceRepo) LinkAnalyticLine(ctx context.Context, id string, lineID string) error {
	a, ok := r.events[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if a.AnalyticLineID == nil {
		a.AnalyticLineID = &lineID
		r.events[id] = a
	}
	return nil
}

// ---- lookups ----

type fakeContractRepo struct {
	contracts []contract.Contract
}

// FindActive ignores the contract state so a stale cancelled contract can be
// returned.
func (r *fakeContractRepo) FindActive(ctx context.Context, employeeID string, date time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	for _, c := range r.contracts {
		if c.EmployeeID == employeeID && c.CoversDate(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCalendarRepo struct {
	times map[string][]schedule.WorkCalendarTime // calendar id -> slots
}

func (r *fakeCalendarRepo) GetTimesByDay(ctx context.Context, calendarID string, date time.Time) ([]schedule.WorkCalendarTime, error) {
	times, ok := r.times[calendarID]
	if !ok {
		return nil, schedule.ErrWorkCalendarNotFound
	}
	var out []schedule.WorkCalendarTime
	for _, t := range times {
		if t.DayOfWeek == schedule.DayOfWeek(date) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves map[string]leave.LeaveStatus // "employee|date"
}

func (r *fakeLeaveRepo) GetLeaveStatus(ctx context.Context, employeeID string, date time.Time) (leave.LeaveStatus, error) {
	return r.leaves[employeeID+"|"+date.Format(dateLayout)], nil
}

type fakeHolidayRepo struct {
	holidays map[string]leave.PublicHoliday
}

func (r *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (*leave.PublicHoliday, error) {
	h, ok := r.holidays[date.Format(dateLayout)]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

// ---- notifier ----

type sentTemplate struct {
	TemplateKey string
	LineID      string
}

type fakeNotifier struct {
	sent        []sentTemplate
	err         error
	noRecipient map[string]bool
}

func (n *fakeNotifier) SendTemplate(ctx context.Context, templateKey string, lineID string) error {
	if n.err != nil {
		return n.err
	}
	if n.noRecipient[lineID] {
		return analytic.ErrNoRecipient
	}
	n.sent = append(n.sent, sentTemplate{TemplateKey: templateKey, LineID: lineID})
	return nil
}

// ---- fixture ----

const (
	testEmployeeID  = "emp-1"
	testTimesheetID = "ts-1"
	testCalendarID  = "cal-standard"
	testContractID  = "contract-1"
)

type fixture struct {
	svc         *AnalyticServiceImpl
	lines       *fakeLineRepo
	attendances *fakeAttendanceRepo
	contracts   *fakeContractRepo
	calendars   *fakeCalendarRepo
	leaves      *fakeLeaveRepo
	holidays    *fakeHolidayRepo
	notifier    *fakeNotifier
}

// standardWeek is Monday to Friday 08:00-17:00 with a one hour lunch break.
func standardWeek() []schedule.WorkCalendarTime {
	breakStart, breakEnd := clock(12, 0), clock(13, 0)
	var times []schedule.WorkCalendarTime
	for dow := 1; dow <= 5; dow++ {
		times = append(times, schedule.WorkCalendarTime{
			ID:             "slot-" + strconv.Itoa(dow),
			WorkCalendarID: testCalendarID,
			DayOfWeek:      dow,
			ClockInTime:    clock(8, 0),
			BreakStartTime: &breakStart,
			BreakEndTime:   &breakEnd,
			ClockOutTime:   clock(17, 0),
		})
	}
	return times
}

func newFixture(cfg config.AnalyticConfig) *fixture {
	calendarID := testCalendarID
	f := &fixture{
		lines:       newFakeLineRepo(),
		attendances: newFakeAttendanceRepo(),
		contracts: &fakeContractRepo{contracts: []contract.Contract{{
			ID:             testContractID,
			EmployeeID:     testEmployeeID,
			Name:           "Permanent",
			State:          contract.ContractStateOpen,
			DateStart:      day("2024-01-01"),
			WorkCalendarID: &calendarID,
		}}},
		calendars: &fakeCalendarRepo{times: map[string][]schedule.WorkCalendarTime{testCalendarID: standardWeek()}},
		leaves:    &fakeLeaveRepo{leaves: map[string]leave.LeaveStatus{}},
		holidays:  &fakeHolidayRepo{holidays: map[string]leave.PublicHoliday{}},
		notifier:  &fakeNotifier{},
	}
	f.lines.employees[testTimesheetID] = testEmployeeID

	if cfg.ExceptionTemplate == "" {
		cfg.ExceptionTemplate = "fail_check_out_notification"
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = "UTC"
	}

	svc := NewAnalyticService(
		passThroughTx{},
		f.lines,
		f.attendances,
		f.contracts,
		f.calendars,
		f.leaves,
		f.holidays,
		f.notifier,
		cfg,
	).(*AnalyticServiceImpl)
	f.svc = svc
	return f
}

func defaultConfig() config.AnalyticConfig {
	return config.AnalyticConfig{
		ExceptionThreshold:   4.0,
		ExceptionTemplate:    "fail_check_out_notification",
		TimeZone:             "UTC",
		ReapplyLeaveDiscount: true,
	}
}

func (f *fixture) addLeave(date string, duration leave.LeaveDurationEnum, name string) {
	f.leaves.leaves[testEmployeeID+"|"+date] = leave.LeaveStatus{
		Leave: &leave.LeaveRequest{
			ID:            "leave-" + date,
			EmployeeID:    testEmployeeID,
			StartDate:     day(date),
			EndDate:       day(date),
			DurationType:  duration,
			Status:        leave.LeaveRequestStatusApproved,
			LeaveTypeName: &name,
		},
		Coverage: duration.Coverage(),
	}
}

func (f *fixture) addHoliday(date, name string) {
	f.holidays.holidays[date] = leave.PublicHoliday{ID: "holiday-" + date, Name: name, Date: day(date)}
}

func (f *fixture) setFlatRate() {
	f.contracts.contracts[0].RatePerHour = true
}
