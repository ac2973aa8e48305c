package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the attendance record store. Dates are calendar
// dates; ranges are inclusive on both ends.
type AttendanceRepository interface {
	// FindByUserAndDateRange returns the user's records in [start, end], oldest first
	FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// GetByUserAndDate returns nil, nil when the user has no record for date.
	// Inside a transaction the row is locked until commit.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Create fails with ErrDuplicateAttendance if (user, date) already exists
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	// ListByUser returns a page of the user's records, newest first, and the total count
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attendance, int64, error)
}
