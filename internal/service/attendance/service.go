package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/andeanwork/attendance-backend-go/internal/config"
	"github.com/andeanwork/attendance-backend-go/internal/domain/attendance"
	"github.com/andeanwork/attendance-backend-go/internal/domain/employee"
	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employeeRepo     employee.EmployeeRepository
	scheduleService  schedule.ScheduleService
	workPointService workpoint.WorkPointService
	cal              *calendar.Calendar
	cfg              config.AttendanceConfig
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleService schedule.ScheduleService,
	workPointService workpoint.WorkPointService,
	cal *calendar.Calendar,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		employeeRepo:         employeeRepo,
		scheduleService:      scheduleService,
		workPointService:     workPointService,
		cal:                  cal,
		cfg:                  cfg,
	}
}

// markContext is everything a marking attempt resolves before the
// sequencer runs.
type markContext struct {
	employee  employee.Employee
	day       schedule.DayResolution
	hasBreak  bool
	lastEvent *attendance.EventKind
}

// prepareMark runs the shared preamble of both marking paths: resolve
// the employee, enforce the prior-day block, resolve today's schedule
// and reject non-workable days, and load the last event of the day.
func (s *AttendanceServiceImpl) prepareMark(ctx context.Context, identifier string) (markContext, error) {
	var mc markContext

	employeeID, err := s.employeeRepo.ResolveID(ctx, identifier)
	if err != nil {
		return mc, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return mc, err
	}
	if !emp.Active {
		return mc, employee.ErrEmployeeInactive
	}
	mc.employee = emp

	today := s.cal.Today()

	open, err := s.AttendanceRepository.HasOpenPriorShift(ctx, employeeID, today, s.cfg.OpenShiftLookbackDays)
	if err != nil {
		return mc, fmt.Errorf("failed to check open prior shifts: %w", err)
	}
	if open {
		return mc, attendance.ErrOpenPriorShift
	}

	day, err := s.scheduleService.ResolveDay(ctx, employeeID, today)
	if err != nil {
		return mc, err
	}
	if schedule.ResolveDayStatus(day.Schedule, day.Exception) != schedule.DayStatusWorkable {
		return mc, attendance.ErrNoWorkableShift
	}
	mc.day = day
	mc.hasBreak = day.Schedule.HasBreak()

	last, err := s.AttendanceRepository.LastEventOfDay(ctx, employeeID, today)
	if err != nil {
		return mc, fmt.Errorf("failed to read last event of day: %w", err)
	}
	if last != nil {
		mc.lastEvent = &last.Event
	}

	return mc, nil
}

func (s *AttendanceServiceImpl) persistMark(ctx context.Context, mc markContext, event attendance.EventKind, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	geoResult, err := s.workPointService.ValidateGeo(ctx, mc.employee.ID, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to validate geofence: %w", err)
	}

	late := computeLateness(event, mc.day.Schedule, s.cal.NowMinutesOfDay())

	record := attendance.Record{
		EmployeeID:      mc.employee.ID,
		RecordedAt:      s.cal.Now(),
		Direction:       attendance.DirectionFor(event),
		Event:           event,
		Method:          attendance.CaptureMethod(req.Method),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		EvidenceURL:     req.EvidenceURL,
		DeviceID:        req.DeviceID,
		WorkPointID:     geoResult.WorkPointID,
		GeoMode:         geoResult.Mode,
		DistanceM:       geoResult.DistanceM,
		ValidationState: attendance.StateApproved,
		LateMinutes:     late,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	return attendance.MarkResponse{
		OK:              true,
		Event:           created.Event,
		Direction:       created.Direction,
		ValidationState: created.ValidationState,
		LateMinutes:     created.LateMinutes,
		Geo:             geoResult,
		Schedule:        mc.day.Schedule,
		Exception:       mc.day.Exception,
		Employee:        employeeInfo(mc.employee),
	}, nil
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkResponse{}, err
	}

	mc, err := s.prepareMark(ctx, req.Identifier)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	event, err := resolveExplicit(mc.lastEvent, mc.hasBreak, attendance.Direction(req.Direction))
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	return s.persistMark(ctx, mc, event, req)
}

// MarkUnattended implements attendance.AttendanceService. The kiosk
// sends only an identifier; the event is inferred from the recorded
// state and the day's schedule.
func (s *AttendanceServiceImpl) MarkUnattended(ctx context.Context, req attendance.UnattendedMarkRequest) (attendance.MarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkResponse{}, err
	}

	mc, err := s.prepareMark(ctx, req.Identifier)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	var firstEnd *int
	if mc.day.Schedule != nil {
		end, err := calendar.ParseTimeToMinutes(mc.day.Schedule.EndTime)
		if err == nil {
			firstEnd = end
		}
	}

	event, err := resolveInferred(mc.lastEvent, mc.hasBreak, s.cal.NowMinutesOfDay(), firstEnd, s.cfg.PermissionThresholdMinutes)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	return s.persistMark(ctx, mc, event, attendance.MarkRequest{
		Identifier: req.Identifier,
		Method:     string(attendance.MethodBarcodeScanner),
	})
}

// CreateManual implements attendance.AttendanceService. The record is
// written at the stated civil instant and enters the reviewing
// workflow as pending; sequencing is not enforced.
func (s *AttendanceServiceImpl) CreateManual(ctx context.Context, req attendance.ManualEntryRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	clock := req.Time
	if len(clock) == 5 {
		clock += ":00"
	}
	recordedAt, err := time.ParseInLocation("2006-01-02 15:04:05", req.Date+" "+clock, s.cal.Location())
	if err != nil {
		return attendance.Record{}, calendar.ErrInvalidDate
	}

	event := attendance.EventKind(req.Event)
	record := attendance.Record{
		EmployeeID:      emp.ID,
		RecordedAt:      recordedAt,
		Direction:       attendance.DirectionFor(event),
		Event:           event,
		Method:          attendance.MethodManualSupervisor,
		EvidenceURL:     req.EvidenceURL,
		Note:            &req.Reason,
		GeoMode:         workpoint.GeoModeNoGPS,
		ValidationState: attendance.StatePending,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.Record{}, err
	}
	return created, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, total, nil
}

// Timeline implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Timeline(ctx context.Context, employeeID string, date string) (attendance.TimelineResponse, error) {
	dateKey, err := s.cal.DateKey(date)
	if err != nil {
		return attendance.TimelineResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.TimelineResponse{}, err
	}

	records, err := s.AttendanceRepository.Timeline(ctx, employeeID, dateKey)
	if err != nil {
		return attendance.TimelineResponse{}, fmt.Errorf("failed to get timeline: %w", err)
	}

	return attendance.TimelineResponse{
		Employee: employeeInfo(emp),
		Timeline: records,
	}, nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string) (attendance.Record, error) {
	return s.AttendanceRepository.SetValidationState(ctx, id, attendance.StateApproved)
}

// Reject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, id string) (attendance.Record, error) {
	return s.AttendanceRepository.SetValidationState(ctx, id, attendance.StateRejected)
}

// OldestOpenDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) OldestOpenDay(ctx context.Context, employeeID string) (attendance.OpenDay, error) {
	date, err := s.AttendanceRepository.OldestOpenDay(ctx, employeeID, s.cal.Today())
	if err != nil {
		return attendance.OpenDay{}, fmt.Errorf("failed to find oldest open day: %w", err)
	}
	return attendance.OpenDay{EmployeeID: employeeID, Date: date}, nil
}

// OldestOpenDays implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) OldestOpenDays(ctx context.Context, employeeIDs []string) ([]attendance.OpenDay, error) {
	days, err := s.AttendanceRepository.OldestOpenDays(ctx, employeeIDs, s.cal.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to find oldest open days: %w", err)
	}
	return days, nil
}

func employeeInfo(e employee.Employee) attendance.EmployeeInfo {
	return attendance.EmployeeInfo{
		ID:             e.ID,
		FullName:       e.FullName(),
		DocumentNumber: e.DocumentNumber,
		PhotoURL:       e.PhotoURL,
		SiteName:       e.SiteName,
		AreaName:       e.AreaName,
	}
}
