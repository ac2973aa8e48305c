package attendance

import "math"

// DefaultComplianceThreshold is the minimum attendance percentage a user
// must reach over a range to meet the requirement.
const DefaultComplianceThreshold = 60.0

// DefaultPresentStatuses are the statuses counted as a present day.
// Absent and leave never count.
var DefaultPresentStatuses = []Status{StatusPresent, StatusHalfDay}

// Stats is the aggregate for one user over one date range. Percentage is
// unrounded; round with RoundPercentage when presenting it.
type Stats struct {
	WorkingDays      int
	PresentDays      int
	Percentage       float64
	MeetsRequirement bool
}

type Policy struct {
	Threshold       float64
	PresentStatuses []Status
}

func DefaultPolicy() Policy {
	return Policy{
		Threshold:       DefaultComplianceThreshold,
		PresentStatuses: DefaultPresentStatuses,
	}
}

// NewPolicy returns the default policy with the threshold overridden.
func NewPolicy(threshold float64) Policy {
	p := DefaultPolicy()
	p.Threshold = threshold
	return p
}

func (p Policy) IsPresent(status Status) bool {
	for _, s := range p.PresentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ComputeStats counts present records and derives the percentage against
// workingDays. A range with no working days yields 0% and never meets the
// requirement.
func (p Policy) ComputeStats(records []Attendance, workingDays int) Stats {
	stats := Stats{WorkingDays: workingDays}
	for _, r := range records {
		if p.IsPresent(r.Status) {
			stats.PresentDays++
		}
	}

	if workingDays > 0 {
		stats.Percentage = float64(stats.PresentDays) * 100 / float64(workingDays)
		stats.MeetsRequirement = stats.Percentage >= p.Threshold
	}
	return stats
}

// RoundPercentage rounds to two decimal places.
func RoundPercentage(pct float64) float64 {
	return math.Round(pct*100) / 100
}
