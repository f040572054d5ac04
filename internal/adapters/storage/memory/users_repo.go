package memory

import (
	"context"

	"animal-registry/internal/domain/users"
	"animal-registry/internal/ports/storage"
)

type userRepo struct {
	db *DB
}

func NewUserRepo(db *DB) users.Repository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u users.User) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return 0, storage.ErrUniqueViolation
		}
	}
	r.db.lastUserID++
	u.ID = r.db.lastUserID
	r.db.users[u.ID] = u
	return u.ID, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return users.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, storage.ErrNotFound
}
