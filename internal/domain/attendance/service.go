package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records today's attendance for the caller: the first
	// call of the day checks in, the next one checks out, later calls only
	// update status and notes.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetToday returns the caller's record for today, or nil
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	// GetMyHistory returns the caller's records, newest first
	GetMyHistory(ctx context.Context, filter HistoryFilter) (ListAttendanceResponse, error)
}
