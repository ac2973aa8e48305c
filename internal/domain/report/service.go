package report

import "context"

// ReportService builds attendance compliance reports over a date range
type ReportService interface {
	// GenerateReport returns the caller's own report for scope self, or a
	// per-employee report for scope all (admins only).
	GenerateReport(ctx context.Context, req ReportRequest) (AttendanceReport, error)
}
