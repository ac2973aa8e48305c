package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type attendanceKey struct {
	userID string
	date   string
}

// AttendanceRepository keeps records in a map keyed by (user, date).
type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[attendanceKey]attendance.Attendance
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[attendanceKey]attendance.Attendance)}
}

func keyOf(userID string, date time.Time) attendanceKey {
	return attendanceKey{userID: userID, date: date.Format("2006-01-02")}
}

func (r *AttendanceRepository) FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Attendance
	for k, rec := range r.records {
		if k.userID != userID || rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[keyOf(userID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(att.UserID, att.Date)
	if _, exists := r.records[k]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateAttendance
	}
	now := time.Now().UTC()
	if att.CreatedAt.IsZero() {
		att.CreatedAt = now
	}
	if att.UpdatedAt.IsZero() {
		att.UpdatedAt = att.CreatedAt
	}
	r.records[k] = att
	return att, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(att.UserID, att.Date)
	existing, ok := r.records[k]
	if !ok || existing.ID != att.ID {
		return attendance.ErrAttendanceNotFound
	}
	att.CreatedAt = existing.CreatedAt
	if att.UpdatedAt.IsZero() {
		att.UpdatedAt = time.Now().UTC()
	}
	r.records[k] = att
	return nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]attendance.Attendance, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []attendance.Attendance
	for k, rec := range r.records {
		if k.userID == userID {
			all = append(all, rec)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })

	total := int64(len(all))
	if offset >= len(all) {
		return []attendance.Attendance{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// Len is the number of stored records.
func (r *AttendanceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)
