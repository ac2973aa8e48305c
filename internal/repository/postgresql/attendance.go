package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceUserDateConstraint = "attendances_user_date_uc"

const attendanceColumns = `a.id, a.user_id, a.date, a.status, a.check_in, a.check_out, a.notes, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.Status,
		&att.CheckIn, &att.CheckOut, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByUserAndDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		  AND a.date >= $2
		  AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	return collectAttendances(rows)
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date = $2
	`
	if inTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// Timestamps come from the caller's clock so the returned record matches later reads
	if newAttendance.CreatedAt.IsZero() {
		newAttendance.CreatedAt = time.Now().UTC()
	}
	if newAttendance.UpdatedAt.IsZero() {
		newAttendance.UpdatedAt = newAttendance.CreatedAt
	}

	query := `
		INSERT INTO attendances AS a (id, user_id, date, status, check_in, check_out, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.Status,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.Notes,
		newAttendance.CreatedAt,
		newAttendance.UpdatedAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err, attendanceUserDateConstraint) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	if att.UpdatedAt.IsZero() {
		att.UpdatedAt = time.Now().UTC()
	}

	query := `
		UPDATE attendances
		SET status = $1, check_in = $2, check_out = $3, notes = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query, att.Status, att.CheckIn, att.CheckOut, att.Notes, att.UpdatedAt, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	if total == 0 {
		return []attendance.Attendance{}, 0, nil
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		ORDER BY a.date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	list, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
