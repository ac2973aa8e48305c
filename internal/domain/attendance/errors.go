package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this date")
	ErrInvalidStatus       = errors.New("invalid attendance status")
	ErrUserIDRequired      = errors.New("user id is required")
)
