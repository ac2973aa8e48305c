package dashboard

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
)

// Period is the month-to-date range a dashboard covers, YYYY-MM-DD inclusive
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ========== EMPLOYEE DASHBOARD ==========

type EmployeeDashboardResponse struct {
	UserID           string  `json:"user_id"`
	Username         string  `json:"username"`
	Period           Period  `json:"period"`
	WorkingDays      int     `json:"working_days"`
	PresentDays      int     `json:"present_days"`
	Percentage       float64 `json:"percentage"`
	MeetsRequirement bool    `json:"meets_requirement"`
	Threshold        float64 `json:"threshold"`

	Today  *attendance.AttendanceResponse `json:"today"`
	Recent []attendance.AttendanceResponse `json:"recent"`
}

// ========== ADMIN DASHBOARD ==========

type AdminDashboardResponse struct {
	Period      Period              `json:"period"`
	WorkingDays int                 `json:"working_days"`
	Threshold   float64             `json:"threshold"`
	Employees   []report.UserReport `json:"employees"`
	Summary     report.Summary      `json:"summary"`
}
