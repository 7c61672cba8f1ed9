package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/andeanwork/attendance-backend-go/internal/config"
	"github.com/andeanwork/attendance-backend-go/internal/domain/attendance"
	"github.com/andeanwork/attendance-backend-go/internal/domain/employee"
	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type testClock struct {
	now time.Time
}

func (c *testClock) set(t time.Time) { c.now = t }

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) ResolveID(ctx context.Context, identifier string) (string, error) {
	if identifier == f.emp.ID || identifier == f.emp.DocumentNumber ||
		(f.emp.ScanCode != nil && identifier == *f.emp.ScanCode) {
		return f.emp.ID, nil
	}
	return "", employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetByDocument(ctx context.Context, documentNumber string) (employee.Employee, error) {
	if documentNumber != f.emp.DocumentNumber {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}

type fakeScheduleService struct {
	schedule.ScheduleService
	day schedule.DayResolution
}

func (f *fakeScheduleService) ResolveDay(ctx context.Context, employeeID string, date string) (schedule.DayResolution, error) {
	day := f.day
	day.Date = date
	return day, nil
}

type fakeWorkPointService struct {
	workpoint.WorkPointService
	geo workpoint.GeoResult
}

func (f *fakeWorkPointService) ValidateGeo(ctx context.Context, employeeID string, lat, lng *float64) (workpoint.GeoResult, error) {
	return f.geo, nil
}

type fakeAttendanceRepo struct {
	records   []attendance.Record
	openPrior bool
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.RecordedAt.Equal(record.RecordedAt) &&
			existing.Event == record.Event {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
	}
	record.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) LastEventOfDay(ctx context.Context, employeeID string, date string) (*attendance.Record, error) {
	var last *attendance.Record
	for i := range f.records {
		r := f.records[i]
		if r.EmployeeID == employeeID && r.RecordedAt.Format("2006-01-02") == date {
			last = &r
		}
	}
	return last, nil
}

func (f *fakeAttendanceRepo) HasOpenPriorShift(ctx context.Context, employeeID string, date string, lookbackDays int) (bool, error) {
	return f.openPrior, nil
}

func (f *fakeAttendanceRepo) OldestOpenDay(ctx context.Context, employeeID string, date string) (*string, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) OldestOpenDays(ctx context.Context, employeeIDs []string, date string) ([]attendance.OpenDay, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeAttendanceRepo) Timeline(ctx context.Context, employeeID string, date string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.RecordedAt.Format("2006-01-02") == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) SetValidationState(ctx context.Context, id string, state attendance.ValidationState) (attendance.Record, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].ValidationState = state
			return f.records[i], nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

// ========================================
// SETUP
// ========================================

const scanCode = "EMP0001"

func testEmployee() employee.Employee {
	code := scanCode
	return employee.Employee{
		ID:             "emp-1",
		DocumentNumber: "45678901",
		ScanCode:       &code,
		FirstName:      "Rosa",
		Active:         true,
	}
}

func splitShiftDay() schedule.DayResolution {
	return schedule.DayResolution{
		Weekday:  1,
		Schedule: splitShift(15),
	}
}

type engineFixture struct {
	svc   attendance.AttendanceService
	clock *testClock
	repo  *fakeAttendanceRepo
	cal   *calendar.Calendar
}

func newEngine(t *testing.T, day schedule.DayResolution, emp employee.Employee) *engineFixture {
	t.Helper()

	clock := &testClock{}
	cal, err := calendar.NewWithClock("America/Lima", func() time.Time { return clock.now })
	require.NoError(t, err)

	// Monday 2025-06-09, before shift start.
	clock.set(time.Date(2025, 6, 9, 8, 0, 0, 0, cal.Location()))

	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(
		repo,
		&fakeEmployeeRepo{emp: emp},
		&fakeScheduleService{day: day},
		&fakeWorkPointService{geo: workpoint.GeoResult{Mode: workpoint.GeoModeNoGPS}},
		cal,
		config.AttendanceConfig{
			Timezone:                   "America/Lima",
			PermissionThresholdMinutes: 60,
			OpenShiftLookbackDays:      3,
		},
	)

	return &engineFixture{svc: svc, clock: clock, repo: repo, cal: cal}
}

func (f *engineFixture) at(hour, min int) {
	f.clock.set(time.Date(2025, 6, 9, hour, min, 0, 0, f.cal.Location()))
}

// ========================================
// UNATTENDED MARKING
// ========================================

func TestMarkUnattended_FullKioskDay(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())
	ctx := context.Background()
	req := attendance.UnattendedMarkRequest{Identifier: scanCode}

	fx.at(9, 5)
	res, err := fx.svc.MarkUnattended(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventShiftIn, res.Event)
	assert.Equal(t, attendance.DirectionIn, res.Direction)
	require.NotNil(t, res.LateMinutes)
	assert.Equal(t, 0, *res.LateMinutes)
	assert.Equal(t, "Rosa", res.Employee.FullName)

	fx.at(13, 2)
	res, err = fx.svc.MarkUnattended(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventBreakOut, res.Event)
	assert.Nil(t, res.LateMinutes)

	fx.at(14, 10)
	res, err = fx.svc.MarkUnattended(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventBreakIn, res.Event)
	require.NotNil(t, res.LateMinutes)
	assert.Equal(t, 10, *res.LateMinutes)

	fx.at(18, 1)
	res, err = fx.svc.MarkUnattended(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventShiftOut, res.Event)
	assert.Equal(t, attendance.DirectionOut, res.Direction)

	fx.at(18, 30)
	_, err = fx.svc.MarkUnattended(ctx, req)
	var seqErr *attendance.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, "shift already closed for today", seqErr.Message)

	assert.Len(t, fx.repo.records, 4)
}

func TestMarkUnattended_EarlyDepartureClosesShift(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())
	ctx := context.Background()
	req := attendance.UnattendedMarkRequest{Identifier: scanCode}

	fx.at(9, 0)
	_, err := fx.svc.MarkUnattended(ctx, req)
	require.NoError(t, err)

	// 11:00 is more than an hour before the 13:00 segment end, so the
	// exit closes the shift instead of opening the break.
	fx.at(11, 0)
	res, err := fx.svc.MarkUnattended(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.EventShiftOut, res.Event)
}

func TestMarkUnattended_RecordsStoredApproved(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())

	fx.at(9, 0)
	res, err := fx.svc.MarkUnattended(context.Background(), attendance.UnattendedMarkRequest{Identifier: scanCode})
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, attendance.StateApproved, res.ValidationState)
	require.Len(t, fx.repo.records, 1)
	stored := fx.repo.records[0]
	assert.Equal(t, attendance.MethodBarcodeScanner, stored.Method)
	assert.Equal(t, workpoint.GeoModeNoGPS, stored.GeoMode)
	assert.Equal(t, fx.clock.now, stored.RecordedAt)
}

// ========================================
// EXPLICIT MARKING
// ========================================

func TestMark_DeclaredDirectionMustMatch(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())

	fx.at(9, 0)
	_, err := fx.svc.Mark(context.Background(), attendance.MarkRequest{
		Identifier: scanCode,
		Direction:  string(attendance.DirectionOut),
		Method:     string(attendance.MethodFixedQR),
	})

	var seqErr *attendance.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, "expected IN to start the shift", seqErr.Message)
	assert.Empty(t, fx.repo.records)
}

func TestMark_EntryLatenessPastTolerance(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())

	fx.at(9, 20)
	res, err := fx.svc.Mark(context.Background(), attendance.MarkRequest{
		Identifier: scanCode,
		Direction:  string(attendance.DirectionIn),
		Method:     string(attendance.MethodDynamicQR),
	})
	require.NoError(t, err)

	require.NotNil(t, res.LateMinutes)
	assert.Equal(t, 5, *res.LateMinutes)
	require.Len(t, fx.repo.records, 1)
	require.NotNil(t, fx.repo.records[0].LateMinutes)
	assert.Equal(t, 5, *fx.repo.records[0].LateMinutes)
}

// ========================================
// REJECTIONS
// ========================================

func TestMark_PriorOpenShiftBlocks(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())
	fx.repo.openPrior = true

	fx.at(9, 0)
	_, err := fx.svc.MarkUnattended(context.Background(), attendance.UnattendedMarkRequest{Identifier: scanCode})
	assert.ErrorIs(t, err, attendance.ErrOpenPriorShift)
}

func TestMark_RestDayRejected(t *testing.T) {
	day := schedule.DayResolution{
		Weekday:  7,
		Schedule: &schedule.WeeklySchedule{IsRestDay: true, ToleranceMinutes: 15},
	}
	fx := newEngine(t, day, testEmployee())

	fx.at(9, 0)
	_, err := fx.svc.MarkUnattended(context.Background(), attendance.UnattendedMarkRequest{Identifier: scanCode})
	assert.ErrorIs(t, err, attendance.ErrNoWorkableShift)
}

func TestMark_BlockedExceptionOverridesSchedule(t *testing.T) {
	day := splitShiftDay()
	day.Exception = &schedule.ScheduleException{
		Date:       "2025-06-09",
		Type:       "feriado",
		IsWorkable: false,
	}
	fx := newEngine(t, day, testEmployee())

	fx.at(9, 0)
	_, err := fx.svc.MarkUnattended(context.Background(), attendance.UnattendedMarkRequest{Identifier: scanCode})
	assert.ErrorIs(t, err, attendance.ErrNoWorkableShift)
}

func TestMark_InactiveEmployee(t *testing.T) {
	emp := testEmployee()
	emp.Active = false
	fx := newEngine(t, splitShiftDay(), emp)

	fx.at(9, 0)
	_, err := fx.svc.MarkUnattended(context.Background(), attendance.UnattendedMarkRequest{Identifier: scanCode})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestMark_UnknownIdentifier(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())

	fx.at(9, 0)
	_, err := fx.svc.MarkUnattended(context.Background(), attendance.UnattendedMarkRequest{Identifier: "nope"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ========================================
// MANUAL ENTRIES
// ========================================

func TestCreateManual_PendingAtStatedInstant(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())

	rec, err := fx.svc.CreateManual(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-06",
		Time:       "09:00",
		Event:      string(attendance.EventShiftIn),
		Reason:     "olvidó marcar al ingresar",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatePending, rec.ValidationState)
	assert.Equal(t, attendance.MethodManualSupervisor, rec.Method)
	assert.Equal(t, attendance.DirectionIn, rec.Direction)
	require.NotNil(t, rec.Note)
	assert.Equal(t, "olvidó marcar al ingresar", *rec.Note)

	want := time.Date(2025, 6, 6, 9, 0, 0, 0, fx.cal.Location())
	assert.True(t, rec.RecordedAt.Equal(want))
}

func TestCreateManual_DuplicateRejected(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())
	req := attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-06",
		Time:       "09:00",
		Event:      string(attendance.EventShiftIn),
		Reason:     "corrección",
	}

	_, err := fx.svc.CreateManual(context.Background(), req)
	require.NoError(t, err)

	_, err = fx.svc.CreateManual(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

// ========================================
// REVIEWING WORKFLOW
// ========================================

func TestApproveAndReject(t *testing.T) {
	fx := newEngine(t, splitShiftDay(), testEmployee())

	rec, err := fx.svc.CreateManual(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-06",
		Time:       "18:00",
		Event:      string(attendance.EventShiftOut),
		Reason:     "salida sin marcar",
	})
	require.NoError(t, err)

	approved, err := fx.svc.Approve(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateApproved, approved.ValidationState)

	rejected, err := fx.svc.Reject(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateRejected, rejected.ValidationState)

	_, err = fx.svc.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
