package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

const TimestampLayout = "2006-01-02 15:04:05"

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(TimestampLayout)
	return &format
}

// ToResponse converts the entity, rendering instants in loc.
func (a Attendance) ToResponse(loc *time.Location) AttendanceResponse {
	if loc == nil {
		loc = time.UTC
	}
	in := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		local := t.In(loc)
		return &local
	}

	var workingHours *float64
	if d := a.WorkedDuration(); d > 0 {
		hours := math.Round(d.Hours()*100) / 100
		workingHours = &hours
	}

	return AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Username:     a.Username,
		Date:         calendar.FormatDate(a.Date),
		Status:       string(a.Status),
		CheckInTime:  timePtrToString(in(a.CheckIn)),
		CheckOutTime: timePtrToString(in(a.CheckOut)),
		WorkingHours: workingHours,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.In(loc).Format(TimestampLayout),
		UpdatedAt:    a.UpdatedAt.In(loc).Format(TimestampLayout),
	}
}
