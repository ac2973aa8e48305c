package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	created := createTestUser(t, ctx, "jane", user.RoleEmployee)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", byID.Username)

	byEmail, err := repo.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	createTestUser(t, ctx, "jane", user.RoleEmployee)

	_, err := repo.Create(ctx, user.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Username:     "jane",
		Email:        "other@example.com",
		PasswordHash: "x",
		Role:         user.RoleEmployee,
		JoinDate:     time.Now().UTC(),
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	usernameTaken, emailTaken, err := repo.ExistsByUsernameOrEmail(ctx, "jane", "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, usernameTaken)
	assert.False(t, emailTaken)
}

func TestUserRepository_ListByRoleOrdersByUsername(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)

	createTestUser(t, ctx, "zed", user.RoleEmployee)
	createTestUser(t, ctx, "amy", user.RoleEmployee)
	createTestUser(t, ctx, "boss", user.RoleAdmin)

	employees, err := repo.ListByRole(ctx, user.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "amy", employees[0].Username)
	assert.Equal(t, "zed", employees[1].Username)
}
