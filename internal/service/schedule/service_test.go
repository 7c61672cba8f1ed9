package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeWeeklyRepo struct {
	byWeekday map[int]*schedule.WeeklySchedule
	created   []schedule.WeeklySchedule
	closedAt  string
}

func (f *fakeWeeklyRepo) GetForDay(ctx context.Context, employeeID string, weekday int, date string) (*schedule.WeeklySchedule, error) {
	return f.byWeekday[weekday], nil
}

func (f *fakeWeeklyRepo) GetEffective(ctx context.Context, employeeID string, date string) ([]schedule.WeeklySchedule, error) {
	var rows []schedule.WeeklySchedule
	for wd := 1; wd <= 7; wd++ {
		if ws := f.byWeekday[wd]; ws != nil {
			rows = append(rows, *ws)
		}
	}
	return rows, nil
}

func (f *fakeWeeklyRepo) History(ctx context.Context, employeeID string) ([]schedule.WeeklySchedule, error) {
	return f.GetEffective(ctx, employeeID, "")
}

func (f *fakeWeeklyRepo) CloseOpenValidity(ctx context.Context, employeeID string, endDate string) error {
	f.closedAt = endDate
	return nil
}

func (f *fakeWeeklyRepo) CreateDay(ctx context.Context, day schedule.WeeklySchedule) (schedule.WeeklySchedule, error) {
	day.ID = "ws-created"
	f.created = append(f.created, day)
	return day, nil
}

type fakeExceptionRepo struct {
	byDate   map[string]*schedule.ScheduleException
	deleted  []string
	lastFrom string
	lastTo   string
}

func (f *fakeExceptionRepo) GetByDate(ctx context.Context, employeeID string, date string) (*schedule.ScheduleException, error) {
	return f.byDate[date], nil
}

func (f *fakeExceptionRepo) Create(ctx context.Context, exc schedule.ScheduleException) (schedule.ScheduleException, error) {
	exc.ID = "exc-created"
	if f.byDate == nil {
		f.byDate = make(map[string]*schedule.ScheduleException)
	}
	f.byDate[exc.Date] = &exc
	return exc, nil
}

func (f *fakeExceptionRepo) Delete(ctx context.Context, id string) error {
	for _, exc := range f.byDate {
		if exc.ID == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return schedule.ErrExceptionNotFound
}

func (f *fakeExceptionRepo) List(ctx context.Context, employeeID string, from, to string) ([]schedule.ScheduleException, error) {
	f.lastFrom, f.lastTo = from, to
	return nil, nil
}

// ========================================
// FIXTURE
// ========================================

func str(s string) *string { return &s }

func newService(t *testing.T, weekly *fakeWeeklyRepo, exceptions *fakeExceptionRepo) schedule.ScheduleService {
	t.Helper()
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	// Friday 2025-06-13
	cal, err := calendar.NewWithClock("America/Lima", func() time.Time {
		return time.Date(2025, 6, 13, 10, 0, 0, 0, lima)
	})
	require.NoError(t, err)
	return NewScheduleService(nil, weekly, exceptions, cal)
}

// ========================================
// TESTS
// ========================================

func TestResolveDay_ReturnsScheduleAndException(t *testing.T) {
	monday := &schedule.WeeklySchedule{
		ID:        "ws-1",
		Weekday:   1,
		StartTime: str("09:00:00"),
		EndTime:   str("18:00:00"),
	}
	holiday := &schedule.ScheduleException{
		ID:         "exc-1",
		Date:       "2025-06-16",
		Type:       "feriado",
		IsWorkable: false,
	}
	weekly := &fakeWeeklyRepo{byWeekday: map[int]*schedule.WeeklySchedule{1: monday}}
	exceptions := &fakeExceptionRepo{byDate: map[string]*schedule.ScheduleException{"2025-06-16": holiday}}
	svc := newService(t, weekly, exceptions)

	// 2025-06-16 is a Monday
	day, err := svc.ResolveDay(context.Background(), "emp-1", "2025-06-16")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-16", day.Date)
	assert.Equal(t, 1, day.Weekday)
	require.NotNil(t, day.Schedule)
	assert.Equal(t, "ws-1", day.Schedule.ID)
	require.NotNil(t, day.Exception)
	assert.Equal(t, "exc-1", day.Exception.ID)

	// The rows come back side by side; precedence is a separate call.
	assert.Equal(t, schedule.DayStatusExceptionBlocked, schedule.ResolveDayStatus(day.Schedule, day.Exception))
}

func TestResolveDay_EmptyDateMeansToday(t *testing.T) {
	weekly := &fakeWeeklyRepo{}
	svc := newService(t, weekly, &fakeExceptionRepo{})

	day, err := svc.ResolveDay(context.Background(), "emp-1", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-13", day.Date)
	assert.Equal(t, 5, day.Weekday)
	assert.Nil(t, day.Schedule)
	assert.Nil(t, day.Exception)
	assert.Equal(t, schedule.DayStatusWorkable, schedule.ResolveDayStatus(day.Schedule, day.Exception))
}

func TestResolveDay_InvalidDate(t *testing.T) {
	svc := newService(t, &fakeWeeklyRepo{}, &fakeExceptionRepo{})

	_, err := svc.ResolveDay(context.Background(), "emp-1", "16/06/2025")
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestSetWeek_RejectsIncompleteWeek(t *testing.T) {
	weekly := &fakeWeeklyRepo{}
	svc := newService(t, weekly, &fakeExceptionRepo{})

	err := svc.SetWeek(context.Background(), "emp-1", schedule.SetWeekRequest{
		Days: []schedule.WeekDayInput{{Weekday: 1, StartTime: str("09:00"), EndTime: str("18:00")}},
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, weekly.created)
	assert.Empty(t, weekly.closedAt)
}

func TestAddException_StampsEmployee(t *testing.T) {
	exceptions := &fakeExceptionRepo{}
	svc := newService(t, &fakeWeeklyRepo{}, exceptions)

	created, err := svc.AddException(context.Background(), "emp-1", schedule.AddExceptionRequest{
		Date:       "2025-07-28",
		Type:       "feriado",
		IsWorkable: false,
		Note:       str("Fiestas Patrias"),
	})
	require.NoError(t, err)

	assert.Equal(t, "exc-created", created.ID)
	assert.Equal(t, "emp-1", created.EmployeeID)
	assert.Equal(t, "2025-07-28", created.Date)
	assert.False(t, created.IsWorkable)
}

func TestAddException_OnePerDate(t *testing.T) {
	exceptions := &fakeExceptionRepo{byDate: map[string]*schedule.ScheduleException{
		"2025-07-28": {ID: "exc-1", Date: "2025-07-28"},
	}}
	svc := newService(t, &fakeWeeklyRepo{}, exceptions)

	_, err := svc.AddException(context.Background(), "emp-1", schedule.AddExceptionRequest{
		Date: "2025-07-28",
		Type: "feriado",
	})
	assert.ErrorIs(t, err, schedule.ErrExceptionExists)
}

func TestDeleteException_NotFound(t *testing.T) {
	svc := newService(t, &fakeWeeklyRepo{}, &fakeExceptionRepo{})

	err := svc.DeleteException(context.Background(), "missing")
	assert.ErrorIs(t, err, schedule.ErrExceptionNotFound)
}

func TestListExceptions_DefaultsToUpcoming(t *testing.T) {
	exceptions := &fakeExceptionRepo{}
	svc := newService(t, &fakeWeeklyRepo{}, exceptions)

	_, err := svc.ListExceptions(context.Background(), "emp-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-13", exceptions.lastFrom)
	assert.Equal(t, "", exceptions.lastTo)
}

func TestCloseValidity_InvalidDate(t *testing.T) {
	weekly := &fakeWeeklyRepo{}
	svc := newService(t, weekly, &fakeExceptionRepo{})

	err := svc.CloseValidity(context.Background(), "emp-1", "not-a-date")
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
	assert.Empty(t, weekly.closedAt)
}
