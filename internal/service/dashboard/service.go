package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	reportservice "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"golang.org/x/sync/errgroup"
)

// recentLimit is how many of the latest records the employee dashboard shows
const recentLimit = 5

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	aggregator *reportservice.Aggregator
	loc        *time.Location
	now        func() time.Time
}

func NewDashboardService(attendanceRepo attendance.AttendanceRepository, aggregator *reportservice.Aggregator, loc *time.Location, now func() time.Time) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		AttendanceRepository: attendanceRepo,
		aggregator:           aggregator,
		loc:                  loc,
		now:                  now,
	}
}

// monthToDate returns [first of this month, today] in the configured zone
func (s *DashboardServiceImpl) monthToDate() (time.Time, time.Time) {
	today := calendar.Today(s.now(), s.loc)
	return calendar.MonthStart(today), today
}

// GetEmployeeDashboard fetches stats, today's record and recent history in parallel
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (*dashboard.EmployeeDashboardResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start, today := s.monthToDate()

	var (
		stats      attendance.Stats
		todayRec   *attendance.Attendance
		recentRecs []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Month-to-date compliance
	g.Go(func() error {
		var err error
		stats, _, err = s.aggregator.UserStats(gCtx, principal.UserID, start, today)
		return err
	})

	// 2. Today's record
	g.Go(func() error {
		var err error
		todayRec, err = s.AttendanceRepository.GetByUserAndDate(gCtx, principal.UserID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		return nil
	})

	// 3. Latest records
	g.Go(func() error {
		var err error
		recentRecs, _, err = s.AttendanceRepository.ListByUser(gCtx, principal.UserID, recentLimit, 0)
		if err != nil {
			return fmt.Errorf("failed to get recent attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dashboard.EmployeeDashboardResponse{
		UserID:           principal.UserID,
		Username:         principal.Username,
		Period:           dashboard.Period{Start: calendar.FormatDate(start), End: calendar.FormatDate(today)},
		WorkingDays:      stats.WorkingDays,
		PresentDays:      stats.PresentDays,
		Percentage:       attendance.RoundPercentage(stats.Percentage),
		MeetsRequirement: stats.MeetsRequirement,
		Threshold:        s.aggregator.Policy().Threshold,
		Recent:           make([]attendance.AttendanceResponse, 0, len(recentRecs)),
	}
	if todayRec != nil {
		r := todayRec.ToResponse(s.loc)
		resp.Today = &r
	}
	for _, rec := range recentRecs {
		resp.Recent = append(resp.Recent, rec.ToResponse(s.loc))
	}

	return resp, nil
}

// GetAdminDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context) (*dashboard.AdminDashboardResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	start, today := s.monthToDate()

	employees, summary, err := s.aggregator.EmployeeStats(ctx, start, today)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []report.UserReport{}
	}

	return &dashboard.AdminDashboardResponse{
		Period:      dashboard.Period{Start: calendar.FormatDate(start), End: calendar.FormatDate(today)},
		WorkingDays: calendar.CountWorkingDays(start, today),
		Threshold:   s.aggregator.Policy().Threshold,
		Employees:   employees,
		Summary:     summary,
	}, nil
}
