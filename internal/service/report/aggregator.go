package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

// maxParallelUsers bounds concurrent per-employee range queries
const maxParallelUsers = 8

// Aggregator turns stored records into compliance stats for a date range.
type Aggregator struct {
	attendance.AttendanceRepository
	user.UserRepository
	policy attendance.Policy
}

func NewAggregator(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository, policy attendance.Policy) *Aggregator {
	return &Aggregator{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		policy:               policy,
	}
}

func (a *Aggregator) Policy() attendance.Policy {
	return a.policy
}

// UserStats computes one user's stats over [start, end] and returns the
// records it was computed from, oldest first.
func (a *Aggregator) UserStats(ctx context.Context, userID string, start, end time.Time) (attendance.Stats, []attendance.Attendance, error) {
	workingDays := calendar.CountWorkingDays(start, end)

	records, err := a.AttendanceRepository.FindByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return attendance.Stats{}, nil, fmt.Errorf("failed to get attendance for user %s: %w", userID, err)
	}

	return a.policy.ComputeStats(records, workingDays), records, nil
}

// Employees lists every user the admin scope covers, in store order
func (a *Aggregator) Employees(ctx context.Context) ([]user.User, error) {
	employees, err := a.UserRepository.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// EmployeeStats computes stats for every employee over [start, end]. The
// result keeps the user store's order; it is never sorted by stats.
func (a *Aggregator) EmployeeStats(ctx context.Context, start, end time.Time) ([]report.UserReport, report.Summary, error) {
	employees, err := a.Employees(ctx)
	if err != nil {
		return nil, report.Summary{}, err
	}
	return a.StatsFor(ctx, employees, start, end)
}

// StatsFor computes stats for the given users over [start, end], keeping their order.
func (a *Aggregator) StatsFor(ctx context.Context, employees []user.User, start, end time.Time) ([]report.UserReport, report.Summary, error) {
	workingDays := calendar.CountWorkingDays(start, end)
	stats := make([]attendance.Stats, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUsers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			records, err := a.AttendanceRepository.FindByUserAndDateRange(gCtx, emp.ID, start, end)
			if err != nil {
				return fmt.Errorf("failed to get attendance for user %s: %w", emp.ID, err)
			}
			stats[i] = a.policy.ComputeStats(records, workingDays)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, report.Summary{}, err
	}

	reports := make([]report.UserReport, 0, len(employees))
	summary := report.Summary{TotalEmployees: len(employees)}
	var totalPct float64
	for i, emp := range employees {
		reports = append(reports, report.NewUserReport(emp.ID, emp.Username, stats[i]))
		if stats[i].MeetsRequirement {
			summary.Compliant++
		} else {
			summary.NonCompliant++
		}
		totalPct += stats[i].Percentage
	}
	if len(employees) > 0 {
		summary.AveragePercentage = attendance.RoundPercentage(totalPct / float64(len(employees)))
	}

	return reports, summary, nil
}
