package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func records(statuses ...Status) []Attendance {
	out := make([]Attendance, 0, len(statuses))
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range statuses {
		out = append(out, Attendance{UserID: "u1", Date: day.AddDate(0, 0, i), Status: s})
	}
	return out
}

func repeat(s Status, n int) []Status {
	out := make([]Status, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestPolicy_ComputeStats(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("january 2024 with 14 present days", func(t *testing.T) {
		statuses := append(repeat(StatusPresent, 10), repeat(StatusHalfDay, 4)...)
		statuses = append(statuses, StatusAbsent, StatusLeave)

		stats := policy.ComputeStats(records(statuses...), 23)

		assert.Equal(t, 14, stats.PresentDays)
		assert.Equal(t, 23, stats.WorkingDays)
		assert.Equal(t, 60.87, RoundPercentage(stats.Percentage))
		assert.True(t, stats.MeetsRequirement)
	})

	t.Run("no records", func(t *testing.T) {
		stats := policy.ComputeStats(nil, 20)
		assert.Equal(t, 0, stats.PresentDays)
		assert.Equal(t, 0.0, stats.Percentage)
		assert.False(t, stats.MeetsRequirement)
	})

	t.Run("leave never counts", func(t *testing.T) {
		stats := policy.ComputeStats(records(repeat(StatusLeave, 5)...), 5)
		assert.Equal(t, 0, stats.PresentDays)
		assert.Equal(t, 0.0, stats.Percentage)
		assert.False(t, stats.MeetsRequirement)
	})

	t.Run("zero working days", func(t *testing.T) {
		stats := policy.ComputeStats(records(StatusPresent, StatusPresent), 0)
		assert.Equal(t, 2, stats.PresentDays)
		assert.Equal(t, 0.0, stats.Percentage)
		assert.False(t, stats.MeetsRequirement)
	})

	t.Run("exactly at threshold", func(t *testing.T) {
		stats := policy.ComputeStats(records(repeat(StatusPresent, 3)...), 5)
		assert.Equal(t, 60.0, stats.Percentage)
		assert.True(t, stats.MeetsRequirement)
	})

	t.Run("just below threshold", func(t *testing.T) {
		stats := policy.ComputeStats(records(repeat(StatusPresent, 11)...), 19)
		assert.Less(t, stats.Percentage, 60.0)
		assert.False(t, stats.MeetsRequirement)
	})

	t.Run("weekend records can exceed 100", func(t *testing.T) {
		stats := policy.ComputeStats(records(repeat(StatusPresent, 7)...), 5)
		assert.Equal(t, 140.0, stats.Percentage)
		assert.True(t, stats.MeetsRequirement)
	})
}

func TestNewPolicy_OverridesThreshold(t *testing.T) {
	strict := NewPolicy(80)
	stats := strict.ComputeStats(records(repeat(StatusPresent, 3)...), 4)

	assert.Equal(t, 75.0, stats.Percentage)
	assert.False(t, stats.MeetsRequirement)
	assert.ElementsMatch(t, DefaultPresentStatuses, strict.PresentStatuses)
}

func TestRoundPercentage(t *testing.T) {
	assert.Equal(t, 60.87, RoundPercentage(14.0/23.0*100))
	assert.Equal(t, 33.33, RoundPercentage(100.0/3.0))
	assert.Equal(t, 66.67, RoundPercentage(200.0/3.0))
	assert.Equal(t, 0.0, RoundPercentage(0))
}

func TestAttendance_ToResponse(t *testing.T) {
	in := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)
	a := Attendance{
		ID:       "a1",
		UserID:   "u1",
		Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:   StatusPresent,
		CheckIn:  &in,
		CheckOut: &out,
	}

	resp := a.ToResponse(time.FixedZone("WIB", 7*3600))

	assert.Equal(t, "2024-01-02", resp.Date)
	assert.Equal(t, "present", resp.Status)
	if assert.NotNil(t, resp.CheckInTime) {
		assert.Equal(t, "2024-01-02 08:00:00", *resp.CheckInTime)
	}
	if assert.NotNil(t, resp.WorkingHours) {
		assert.Equal(t, 8.5, *resp.WorkingHours)
	}
}

func TestHistoryFilter_Validate(t *testing.T) {
	f := HistoryFilter{}
	assert.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultHistoryLimit, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = HistoryFilter{Page: 3, Limit: 10}
	assert.NoError(t, f.Validate())
	assert.Equal(t, 20, f.Offset())

	f = HistoryFilter{Page: -1, Limit: 500}
	assert.Error(t, f.Validate())
}

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	ok := MarkAttendanceRequest{Status: "half-day"}
	assert.NoError(t, ok.Validate())

	missing := MarkAttendanceRequest{}
	assert.NoError(t, missing.Validate())
	assert.Equal(t, string(StatusPresent), missing.Status)

	blank := MarkAttendanceRequest{Status: "  "}
	assert.NoError(t, blank.Validate())
	assert.Equal(t, string(StatusPresent), blank.Status)

	bad := MarkAttendanceRequest{Status: "late"}
	assert.Error(t, bad.Validate())
}
