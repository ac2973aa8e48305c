package report

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type Scope string

const (
	ScopeSelf Scope = "self"
	ScopeAll  Scope = "all"
)

var ValidScopes = []string{string(ScopeSelf), string(ScopeAll)}

// ========================================
// REPORT REQUEST
// ========================================

// ReportRequest covers the inclusive range [StartDate, EndDate]. An end
// before the start is accepted and yields zero working days.
type ReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Scope     string `json:"scope"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.Start = d
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.End = d
	}

	if validator.IsEmpty(r.Scope) {
		r.Scope = string(ScopeSelf)
	} else if !validator.IsInSlice(r.Scope, ValidScopes) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: "scope must be one of: self, all",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// REPORT RESPONSE
// ========================================

type AttendanceReport struct {
	Scope       string  `json:"scope"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	WorkingDays int     `json:"working_days"`
	Threshold   float64 `json:"threshold"`
	GeneratedAt string  `json:"generated_at"`

	// Set for scope self
	Report *UserReport `json:"report,omitempty"`

	// Set for scope all, in employee order
	Employees []UserReport `json:"employees,omitzero"`
	Summary   *Summary     `json:"summary,omitempty"`
}

type UserReport struct {
	UserID           string  `json:"user_id"`
	Username         string  `json:"username"`
	WorkingDays      int     `json:"working_days"`
	PresentDays      int     `json:"present_days"`
	Percentage       float64 `json:"percentage"`
	MeetsRequirement bool    `json:"meets_requirement"`

	Records []attendance.AttendanceResponse `json:"records,omitempty"`
}

type Summary struct {
	TotalEmployees    int     `json:"total_employees"`
	Compliant         int     `json:"compliant"`
	NonCompliant      int     `json:"non_compliant"`
	AveragePercentage float64 `json:"average_percentage"`
}

// NewUserReport rounds the percentage for presentation.
func NewUserReport(userID, username string, stats attendance.Stats) UserReport {
	return UserReport{
		UserID:           userID,
		Username:         username,
		WorkingDays:      stats.WorkingDays,
		PresentDays:      stats.PresentDays,
		Percentage:       attendance.RoundPercentage(stats.Percentage),
		MeetsRequirement: stats.MeetsRequirement,
	}
}
