package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/database"
	"github.com/andeanwork/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

const defaultToleranceMinutes = 15

type ScheduleServiceImpl struct {
	db *database.DB
	schedule.WeeklyScheduleRepository
	schedule.ScheduleExceptionRepository
	cal *calendar.Calendar
}

func NewScheduleService(
	db *database.DB,
	weeklyRepo schedule.WeeklyScheduleRepository,
	exceptionRepo schedule.ScheduleExceptionRepository,
	cal *calendar.Calendar,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:                          db,
		WeeklyScheduleRepository:    weeklyRepo,
		ScheduleExceptionRepository: exceptionRepo,
		cal:                         cal,
	}
}

// ResolveDay implements schedule.ScheduleService. Returns the weekly
// row and the exception for the date side by side; precedence between
// them is decided by the caller through ResolveDayStatus.
func (s *ScheduleServiceImpl) ResolveDay(ctx context.Context, employeeID string, date string) (schedule.DayResolution, error) {
	dateKey, err := s.cal.DateKey(date)
	if err != nil {
		return schedule.DayResolution{}, err
	}
	weekday, err := s.cal.WeekdayISO(dateKey)
	if err != nil {
		return schedule.DayResolution{}, err
	}

	exception, err := s.ScheduleExceptionRepository.GetByDate(ctx, employeeID, dateKey)
	if err != nil {
		return schedule.DayResolution{}, fmt.Errorf("failed to get exception: %w", err)
	}

	weekly, err := s.WeeklyScheduleRepository.GetForDay(ctx, employeeID, weekday, dateKey)
	if err != nil {
		return schedule.DayResolution{}, fmt.Errorf("failed to get schedule for day: %w", err)
	}

	return schedule.DayResolution{
		Date:      dateKey,
		Weekday:   weekday,
		Schedule:  weekly,
		Exception: exception,
	}, nil
}

// SetWeek implements schedule.ScheduleService. The previous open
// validity window is closed before the 7 new rows go in, keeping at
// most one open row per (employee, weekday).
func (s *ScheduleServiceImpl) SetWeek(ctx context.Context, employeeID string, req schedule.SetWeekRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	validFrom := req.ValidFrom
	if validFrom == "" {
		validFrom = s.cal.Today()
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.WeeklyScheduleRepository.CloseOpenValidity(txCtx, employeeID, validFrom); err != nil {
			return fmt.Errorf("failed to close previous validity: %w", err)
		}

		for _, d := range req.Days {
			day := schedule.WeeklySchedule{
				EmployeeID:       employeeID,
				Weekday:          d.Weekday,
				IsRestDay:        d.IsRestDay,
				ToleranceMinutes: defaultToleranceMinutes,
				ValidFrom:        validFrom,
			}
			if d.ToleranceMinutes != nil && *d.ToleranceMinutes > 0 {
				day.ToleranceMinutes = *d.ToleranceMinutes
			}
			if !d.IsRestDay {
				day.StartTime = d.StartTime
				day.EndTime = d.EndTime
				day.SecondStartTime = d.SecondStartTime
				day.SecondEndTime = d.SecondEndTime
			}

			if _, err := s.WeeklyScheduleRepository.CreateDay(txCtx, day); err != nil {
				return fmt.Errorf("failed to insert weekday %d: %w", d.Weekday, err)
			}
		}

		return nil
	})
}

// CloseValidity implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CloseValidity(ctx context.Context, employeeID string, endDate string) error {
	dateKey, err := s.cal.DateKey(endDate)
	if err != nil {
		return err
	}
	if err := s.WeeklyScheduleRepository.CloseOpenValidity(ctx, employeeID, dateKey); err != nil {
		return fmt.Errorf("failed to close validity: %w", err)
	}
	return nil
}

// GetEffective implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetEffective(ctx context.Context, employeeID string, date string) ([]schedule.WeeklySchedule, error) {
	dateKey, err := s.cal.DateKey(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.WeeklyScheduleRepository.GetEffective(ctx, employeeID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get effective schedule: %w", err)
	}
	return rows, nil
}

// History implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) History(ctx context.Context, employeeID string) ([]schedule.WeeklySchedule, error) {
	rows, err := s.WeeklyScheduleRepository.History(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule history: %w", err)
	}
	return rows, nil
}

// AddException implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) AddException(ctx context.Context, employeeID string, req schedule.AddExceptionRequest) (schedule.ScheduleException, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleException{}, err
	}

	existing, err := s.ScheduleExceptionRepository.GetByDate(ctx, employeeID, req.Date)
	if err != nil {
		return schedule.ScheduleException{}, fmt.Errorf("failed to check existing exception: %w", err)
	}
	if existing != nil {
		return schedule.ScheduleException{}, schedule.ErrExceptionExists
	}

	exc := schedule.ScheduleException{
		EmployeeID: employeeID,
		Date:       req.Date,
		Type:       req.Type,
		IsWorkable: req.IsWorkable,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Note:       req.Note,
	}
	created, err := s.ScheduleExceptionRepository.Create(ctx, exc)
	if err != nil {
		return schedule.ScheduleException{}, fmt.Errorf("failed to create exception: %w", err)
	}
	return created, nil
}

// DeleteException implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteException(ctx context.Context, id string) error {
	if err := s.ScheduleExceptionRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, schedule.ErrExceptionNotFound) {
			return schedule.ErrExceptionNotFound
		}
		return fmt.Errorf("failed to delete exception: %w", err)
	}
	return nil
}

// GetExceptionByDate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetExceptionByDate(ctx context.Context, employeeID string, date string) (*schedule.ScheduleException, error) {
	dateKey, err := s.cal.DateKey(date)
	if err != nil {
		return nil, err
	}
	exc, err := s.ScheduleExceptionRepository.GetByDate(ctx, employeeID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get exception: %w", err)
	}
	return exc, nil
}

// ListExceptions implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListExceptions(ctx context.Context, employeeID string, from, to string) ([]schedule.ScheduleException, error) {
	if from == "" && to == "" {
		// default to upcoming exceptions so the front keeps showing
		// them until the day has passed
		from = s.cal.Today()
	}
	rows, err := s.ScheduleExceptionRepository.List(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	return rows, nil
}
