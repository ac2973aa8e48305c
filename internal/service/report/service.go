package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type ReportServiceImpl struct {
	aggregator *Aggregator
	cache      cache.Cache
	cacheTTL   time.Duration
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(aggregator *Aggregator, reportCache cache.Cache, cacheTTL time.Duration, loc *time.Location, now func() time.Time) report.ReportService {
	if reportCache == nil {
		reportCache = cache.Noop{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ReportServiceImpl{
		aggregator: aggregator,
		cache:      reportCache,
		cacheTTL:   cacheTTL,
		loc:        loc,
		now:        now,
	}
}

// GenerateReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, req report.ReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	if report.Scope(req.Scope) == report.ScopeAll {
		if !principal.IsAdmin() {
			return report.AttendanceReport{}, report.ErrAdminScopeRequired
		}
		return s.allEmployees(ctx, req)
	}

	return s.self(ctx, principal, req)
}

func (s *ReportServiceImpl) header(req report.ReportRequest) report.AttendanceReport {
	return report.AttendanceReport{
		Scope:       req.Scope,
		StartDate:   calendar.FormatDate(req.Start),
		EndDate:     calendar.FormatDate(req.End),
		WorkingDays: calendar.CountWorkingDays(req.Start, req.End),
		Threshold:   s.aggregator.Policy().Threshold,
		GeneratedAt: s.now().In(s.loc).Format(attendance.TimestampLayout),
	}
}

func (s *ReportServiceImpl) self(ctx context.Context, principal jwt.Principal, req report.ReportRequest) (report.AttendanceReport, error) {
	stats, records, err := s.aggregator.UserStats(ctx, principal.UserID, req.Start, req.End)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	userReport := report.NewUserReport(principal.UserID, principal.Username, stats)
	userReport.Records = make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		userReport.Records = append(userReport.Records, rec.ToResponse(s.loc))
	}

	out := s.header(req)
	out.Report = &userReport
	return out, nil
}

func (s *ReportServiceImpl) allEmployees(ctx context.Context, req report.ReportRequest) (report.AttendanceReport, error) {
	employees, err := s.aggregator.Employees(ctx)
	if err != nil {
		return report.AttendanceReport{}, err
	}
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	generation, err := s.cache.Counter(ctx, report.GenerationKey)
	if err != nil {
		slog.Warn("report cache unavailable, computing directly", "error", err)
	}
	key := report.AllScopeCacheKey(req.Start, req.End, s.aggregator.Policy().Threshold, generation, report.RosterFingerprint(ids))

	if err == nil {
		var cached report.AttendanceReport
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			slog.Warn("failed to read cached report", "key", key, "error", err)
		}
		if hit {
			if cached.Employees == nil {
				cached.Employees = []report.UserReport{}
			}
			return cached, nil
		}
	}

	reports, summary, err := s.aggregator.StatsFor(ctx, employees, req.Start, req.End)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	if reports == nil {
		reports = []report.UserReport{}
	}
	out := s.header(req)
	out.Employees = reports
	out.Summary = &summary

	if err := s.cache.SetJSON(ctx, key, out, s.cacheTTL); err != nil {
		slog.Warn("failed to cache report", "key", key, "error", err)
	}
	return out, nil
}
