package postgres

import (
	"context"
	"database/sql"

	"animal-registry/internal/domain/animals"
	"animal-registry/internal/ports/storage"
)

type AnimalsRepo struct {
	db *sql.DB
}

var _ animals.Repository = (*AnimalsRepo)(nil)

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (int64, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO animals (name, species_id, age, sex, parent_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`,
			a.Name,
			toNullInt64(a.SpeciesID),
			a.Age,
			string(a.Sex),
			toNullInt64(a.ParentID),
			a.CreatedAt,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE animals
			SET
				name = $2,
				species_id = $3,
				age = $4,
				sex = $5,
				parent_id = $6,
				created_at = $7
			WHERE id = $1
		`,
			a.ID,
			a.Name,
			toNullInt64(a.SpeciesID),
			a.Age,
			string(a.Sex),
			toNullInt64(a.ParentID),
			a.CreatedAt,
		)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// Delete: la FK parent_id es ON DELETE SET NULL, los hijos quedan huérfanos.
func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals a WHERE a.id = $1`, id)

	a, err := scanAnimal(row)
	if err != nil {
		return animals.Animal{}, mapError(err)
	}
	return a, nil
}

func (r *AnimalsRepo) GetByIDs(ctx context.Context, ids []int64) ([]animals.Animal, error) {
	if len(ids) == 0 {
		return []animals.Animal{}, nil
	}
	return r.query(ctx, `SELECT `+animalColumns+` FROM animals a WHERE a.id = ANY($1) ORDER BY a.id`, ids)
}

func (r *AnimalsRepo) ListChildren(ctx context.Context, parentIDs []int64) ([]animals.Animal, error) {
	if len(parentIDs) == 0 {
		return []animals.Animal{}, nil
	}
	return r.query(ctx, `SELECT `+animalColumns+` FROM animals a WHERE a.parent_id = ANY($1) ORDER BY a.id`, parentIDs)
}

func (r *AnimalsRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM animals WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, mapError(err)
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter, p animals.Page) ([]animals.Animal, error) {
	q, args := compileAnimalFilter(f).selectSQL(p)
	return r.query(ctx, q, args...)
}

func (r *AnimalsRepo) Count(ctx context.Context, f animals.Filter) (int, error) {
	q, args := compileAnimalFilter(f).countSQL()

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *AnimalsRepo) query(ctx context.Context, q string, args ...any) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, mapError(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s rowScanner) (animals.Animal, error) {
	var (
		a         animals.Animal
		sex       string
		speciesID sql.NullInt64
		parentID  sql.NullInt64
	)
	if err := s.Scan(&a.ID, &a.Name, &speciesID, &a.Age, &sex, &parentID, &a.CreatedAt); err != nil {
		return animals.Animal{}, err
	}
	a.Sex = animals.Sex(sex)
	a.SpeciesID = fromNullInt64(speciesID)
	a.ParentID = fromNullInt64(parentID)
	return a, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
