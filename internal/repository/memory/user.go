package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(users ...user.User) *UserRepository {
	r := &UserRepository{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == newUser.Username {
			return user.User{}, user.ErrUsernameExists
		}
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrEmailExists
		}
	}
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var usernameTaken, emailTaken bool
	for _, u := range r.users {
		if u.Username == username {
			usernameTaken = true
		}
		if strings.EqualFold(u.Email, email) {
			emailTaken = true
		}
	}
	return usernameTaken, emailTaken, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

var _ user.UserRepository = (*UserRepository)(nil)
