package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Recorder applies the per-day attendance state machine:
//
//	no record               -> create, check-in = now
//	checked in, not out     -> overwrite status/notes, check-out = now
//	checked in and out      -> overwrite status/notes only
type Recorder struct {
	tx   database.Transactor
	repo attendance.AttendanceRepository
}

func NewRecorder(tx database.Transactor, repo attendance.AttendanceRepository) *Recorder {
	return &Recorder{tx: tx, repo: repo}
}

// Record upserts the (userID, date) record. A concurrent first mark that
// wins the insert race is absorbed by retrying once through the update path.
func (r *Recorder) Record(ctx context.Context, userID string, date time.Time, status attendance.Status, notes *string, now time.Time) (attendance.Attendance, error) {
	if validator.IsEmpty(userID) {
		return attendance.Attendance{}, attendance.ErrUserIDRequired
	}
	if !validator.IsInSlice(string(status), attendance.ValidStatuses) {
		return attendance.Attendance{}, attendance.ErrInvalidStatus
	}
	// PostgreSQL keeps microseconds
	now = now.UTC().Truncate(time.Microsecond)

	rec, err := r.record(ctx, userID, date, status, notes, now)
	if errors.Is(err, attendance.ErrDuplicateAttendance) {
		rec, err = r.record(ctx, userID, date, status, notes, now)
	}
	return rec, err
}

func (r *Recorder) record(ctx context.Context, userID string, date time.Time, status attendance.Status, notes *string, now time.Time) (attendance.Attendance, error) {
	var out attendance.Attendance

	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := r.repo.GetByUserAndDate(ctx, userID, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance for %s: %w", date.Format("2006-01-02"), err)
		}

		if existing == nil {
			created, err := r.repo.Create(ctx, attendance.Attendance{
				ID:        uuid.Must(uuid.NewV7()).String(),
				UserID:    userID,
				Date:      date,
				Status:    status,
				CheckIn:   &now,
				Notes:     notes,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return err
			}
			out = created
			return nil
		}

		existing.Status = status
		existing.Notes = notes
		if existing.IsCheckedIn() && !existing.IsCheckedOut() {
			existing.CheckOut = &now
		}
		existing.UpdatedAt = now

		if err := r.repo.Update(ctx, *existing); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		out = *existing
		return nil
	})

	return out, err
}
