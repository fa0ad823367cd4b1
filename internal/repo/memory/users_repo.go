package memory

import (
	"context"
	"sync"
	"time"

	"github.com/andinalabs/cataloghub/internal/domain/user"
)

// UsersRepo is the in-memory credential store used by tests and by dev runs
// without a database. Same single-row atomicity as the postgres repo, just
// under one mutex.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // keyed by id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Insert(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) UpdateRefreshTokenHash(ctx context.Context, id string, hash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.ErrNotFound
	}

	if hash != nil {
		v := *hash
		u.RefreshTokenHash = &v
	} else {
		u.RefreshTokenHash = nil
	}

	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return nil
}
