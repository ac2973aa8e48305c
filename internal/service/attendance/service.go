package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	recorder *Recorder
	cache    cache.Cache
	loc      *time.Location
	now      func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	reportCache cache.Cache,
	loc *time.Location,
	now func() time.Time,
) attendance.AttendanceService {
	if reportCache == nil {
		reportCache = cache.Noop{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		recorder:             NewRecorder(tx, attendanceRepo),
		cache:                reportCache,
		loc:                  loc,
		now:                  now,
	}
}

func (s *AttendanceServiceImpl) toResponse(att attendance.Attendance, principal jwt.Principal) attendance.AttendanceResponse {
	if att.Username == nil && principal.Username != "" {
		username := principal.Username
		att.Username = &username
	}
	return att.ToResponse(s.loc)
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := calendar.Today(now, s.loc)

	rec, err := s.recorder.Record(ctx, principal.UserID, today, attendance.Status(req.Status), req.Notes, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.cache.Incr(ctx, report.GenerationKey); err != nil {
		slog.Warn("failed to bump report cache generation", "error", err)
	}

	return s.toResponse(rec, principal), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	today := calendar.Today(s.now(), s.loc)
	rec, err := s.AttendanceRepository.GetByUserAndDate(ctx, principal.UserID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	resp := s.toResponse(*rec, principal)
	return &resp, nil
}

// GetMyHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.ListByUser(ctx, principal.UserID, filter.Limit, filter.Offset())
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.toResponse(rec, principal))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", filter.Offset()+1, filter.Offset()+len(records), total)
	if total == 0 || len(records) == 0 {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}
