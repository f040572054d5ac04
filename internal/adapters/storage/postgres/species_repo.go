package postgres

import (
	"context"
	"database/sql"

	"animal-registry/internal/domain/species"
)

type SpeciesRepo struct {
	db *sql.DB
}

var _ species.Repository = (*SpeciesRepo)(nil)

func NewSpeciesRepo(db *sql.DB) *SpeciesRepo {
	return &SpeciesRepo{db: db}
}

func (r *SpeciesRepo) Create(ctx context.Context, s species.Species) (int64, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `INSERT INTO species (name) VALUES ($1) RETURNING id`, s.Name).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SpeciesRepo) Update(ctx context.Context, s species.Species) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE species SET name = $2 WHERE id = $1`, s.ID, s.Name)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// Delete: animals.species_id es ON DELETE SET NULL.
func (r *SpeciesRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM species WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (r *SpeciesRepo) GetByID(ctx context.Context, id int64) (species.Species, error) {
	var s species.Species
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM species WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return species.Species{}, mapError(err)
	}
	return s, nil
}

func (r *SpeciesRepo) GetByIDs(ctx context.Context, ids []int64) ([]species.Species, error) {
	if len(ids) == 0 {
		return []species.Species{}, nil
	}
	return r.query(ctx, `SELECT id, name FROM species WHERE id = ANY($1) ORDER BY id`, ids)
}

func (r *SpeciesRepo) List(ctx context.Context) ([]species.Species, error) {
	return r.query(ctx, `SELECT id, name FROM species ORDER BY id`)
}

func (r *SpeciesRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM species WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, mapError(err)
}

func (r *SpeciesRepo) query(ctx context.Context, q string, args ...any) ([]species.Species, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]species.Species, 0)
	for rows.Next() {
		var s species.Species
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, mapError(rows.Err())
}
