package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-api/internal/domain/user"
)

// memoryUserRepo keeps users in process memory. Every method holds the lock
// for its whole body, so the uniqueness check and the write are atomic.
type memoryUserRepo struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*user.User
	order []uuid.UUID
}

func NewMemoryUserRepo() user.Repository {
	return &memoryUserRepo{byID: make(map[uuid.UUID]*user.User)}
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.findByEmailLocked(email); u != nil {
		return clone(u), nil
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *memoryUserRepo) List(_ context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*user.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, clone(r.byID[id]))
	}
	return users, nil
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByEmailLocked(u.Email) != nil {
		return user.ErrDuplicateEmail
	}
	if _, ok := r.byID[u.ID]; ok {
		return user.ErrDuplicateEmail
	}
	r.byID[u.ID] = clone(u)
	r.order = append(r.order, u.ID)
	return nil
}

func (r *memoryUserRepo) ReplaceFields(_ context.Context, id uuid.UUID, name, email, passwordHash string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	if other := r.findByEmailLocked(email); other != nil && other.ID != id {
		return nil, user.ErrDuplicateEmail
	}

	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	return clone(u), nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryUserRepo) findByEmailLocked(email string) *user.User {
	for _, id := range r.order {
		if u := r.byID[id]; u.Email == email {
			return u
		}
	}
	return nil
}

func clone(u *user.User) *user.User {
	c := *u
	return &c
}
