package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

var (
	jan2  = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t0900 = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	t1700 = time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC)
	t1800 = time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)
)

func TestRecorder_StateMachine(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAttendanceRepository()
	rec := NewRecorder(memory.NewTransactor(), repo)

	first, err := rec.Record(ctx, "u1", jan2, attendance.StatusPresent, strPtr("arrived"), t0900)
	require.NoError(t, err)
	require.NotNil(t, first.CheckIn)
	assert.Equal(t, t0900, *first.CheckIn)
	assert.Nil(t, first.CheckOut)
	assert.Equal(t, attendance.StatusPresent, first.Status)

	second, err := rec.Record(ctx, "u1", jan2, attendance.StatusHalfDay, strPtr("left early"), t1700)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, t0900, *second.CheckIn)
	require.NotNil(t, second.CheckOut)
	assert.Equal(t, t1700, *second.CheckOut)
	assert.Equal(t, attendance.StatusHalfDay, second.Status)
	assert.Equal(t, "left early", *second.Notes)

	third, err := rec.Record(ctx, "u1", jan2, attendance.StatusPresent, nil, t1800)
	require.NoError(t, err)
	assert.Equal(t, t1700, *third.CheckOut, "check-out is set once")
	assert.Equal(t, attendance.StatusPresent, third.Status)
	assert.Nil(t, third.Notes)

	assert.Equal(t, 1, repo.Len())
}

func TestRecorder_TimestampsMatchStoredRecord(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAttendanceRepository()
	rec := NewRecorder(memory.NewTransactor(), repo)

	checkIn := t0900.Add(123456789 * time.Nanosecond)
	first, err := rec.Record(ctx, "u1", jan2, attendance.StatusPresent, nil, checkIn)
	require.NoError(t, err)
	assert.Equal(t, checkIn.Truncate(time.Microsecond), *first.CheckIn)
	assert.Equal(t, *first.CheckIn, first.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second, err := rec.Record(ctx, "u1", jan2, attendance.StatusPresent, nil, t1700)
	require.NoError(t, err)
	assert.Equal(t, t1700, second.UpdatedAt)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	stored, err := repo.GetByUserAndDate(ctx, "u1", jan2)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, second.UpdatedAt, stored.UpdatedAt)
	assert.Equal(t, second.CreatedAt, stored.CreatedAt)
}

func TestRecorder_RejectsBadInput(t *testing.T) {
	rec := NewRecorder(memory.NewTransactor(), memory.NewAttendanceRepository())

	_, err := rec.Record(context.Background(), "", jan2, attendance.StatusPresent, nil, t0900)
	assert.ErrorIs(t, err, attendance.ErrUserIDRequired)

	_, err = rec.Record(context.Background(), "u1", jan2, attendance.Status("late"), nil, t0900)
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestRecorder_ConcurrentMarksKeepOneRecord(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAttendanceRepository()
	rec := NewRecorder(memory.NewTransactor(), repo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := rec.Record(ctx, "u1", jan2, attendance.StatusPresent, nil, t0900.Add(time.Duration(i)*time.Minute))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Len())
	got, err := repo.GetByUserAndDate(ctx, "u1", jan2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.CheckIn)
	assert.NotNil(t, got.CheckOut)
}

// staleReadRepo hides an existing row from the first lookup, the way a
// concurrent insert that commits between read and write looks to the caller.
type staleReadRepo struct {
	*memory.AttendanceRepository
	mu    sync.Mutex
	stale bool
}

func (r *staleReadRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	stale := r.stale
	r.stale = false
	r.mu.Unlock()
	if stale {
		return nil, nil
	}
	return r.AttendanceRepository.GetByUserAndDate(ctx, userID, date)
}

func TestRecorder_RetriesDuplicateThroughUpdate(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewAttendanceRepository()
	_, err := inner.Create(ctx, attendance.Attendance{
		ID: "winner", UserID: "u1", Date: jan2, Status: attendance.StatusPresent, CheckIn: &t0900,
	})
	require.NoError(t, err)

	repo := &staleReadRepo{AttendanceRepository: inner, stale: true}
	rec := NewRecorder(memory.NewTransactor(), repo)

	got, err := rec.Record(ctx, "u1", jan2, attendance.StatusHalfDay, nil, t1700)
	require.NoError(t, err)
	assert.Equal(t, "winner", got.ID)
	require.NotNil(t, got.CheckOut)
	assert.Equal(t, t1700, *got.CheckOut)
	assert.Equal(t, 1, inner.Len())
}

// alwaysDuplicateRepo never sees a row but cannot insert one either.
type alwaysDuplicateRepo struct {
	*memory.AttendanceRepository
}

func (r alwaysDuplicateRepo) GetByUserAndDate(context.Context, string, time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (r alwaysDuplicateRepo) Create(context.Context, attendance.Attendance) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrDuplicateAttendance
}

func TestRecorder_DuplicateAfterRetrySurfaces(t *testing.T) {
	rec := NewRecorder(memory.NewTransactor(), alwaysDuplicateRepo{memory.NewAttendanceRepository()})

	_, err := rec.Record(context.Background(), "u1", jan2, attendance.StatusPresent, nil, t0900)
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}
