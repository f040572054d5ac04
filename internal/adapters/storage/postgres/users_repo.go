package postgres

import (
	"context"
	"database/sql"

	"animal-registry/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

var _ users.Repository = (*UsersRepo)(nil)

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (int64, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO users (username, hashed_password, created_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`, u.Username, u.HashedPassword, u.CreatedAt).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return r.getOne(ctx, `SELECT id, username, hashed_password, created_at FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.getOne(ctx, `SELECT id, username, hashed_password, created_at FROM users WHERE username = $1`, username)
}

func (r *UsersRepo) getOne(ctx context.Context, q string, arg any) (users.User, error) {
	var u users.User
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Username, &u.HashedPassword, &u.CreatedAt); err != nil {
		return users.User{}, mapError(err)
	}
	return u, nil
}
