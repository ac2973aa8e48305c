package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetEmployeeDashboard returns the caller's month-to-date compliance,
	// today's record and the most recent records
	GetEmployeeDashboard(ctx context.Context) (*EmployeeDashboardResponse, error)

	// GetAdminDashboard returns month-to-date stats for every employee
	GetAdminDashboard(ctx context.Context) (*AdminDashboardResponse, error)
}
