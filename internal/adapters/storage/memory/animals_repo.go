package memory

import (
	"context"
	"strings"

	"animal-registry/internal/domain/animals"
	"animal-registry/internal/ports/storage"
)

type animalRepo struct {
	db *DB
}

func NewAnimalRepo(db *DB) animals.Repository {
	return &animalRepo{db: db}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkConstraints(a); err != nil {
		return 0, err
	}

	r.db.lastAnimalID++
	a.ID = r.db.lastAnimalID
	r.db.animals[a.ID] = a
	if a.ParentID != nil {
		r.db.linkChild(*a.ParentID, a.ID)
	}
	return a.ID, nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.animals[a.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if err := r.checkConstraints(a); err != nil {
		return err
	}

	if cur.ParentID != nil {
		r.db.unlinkChild(*cur.ParentID, a.ID)
	}
	if a.ParentID != nil {
		r.db.linkChild(*a.ParentID, a.ID)
	}
	r.db.animals[a.ID] = a
	return nil
}

// Delete equivale a ON DELETE SET NULL sobre animals.parent_id.
func (r *animalRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.animals[id]
	if !ok {
		return storage.ErrNotFound
	}

	for _, childID := range r.db.children[id] {
		child := r.db.animals[childID]
		child.ParentID = nil
		r.db.animals[childID] = child
	}
	delete(r.db.children, id)

	if a.ParentID != nil {
		r.db.unlinkChild(*a.ParentID, id)
	}
	delete(r.db.animals, id)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.animals[id]
	if !ok {
		return animals.Animal{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) GetByIDs(ctx context.Context, ids []int64) ([]animals.Animal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]animals.Animal, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.db.animals[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *animalRepo) ListChildren(ctx context.Context, parentIDs []int64) ([]animals.Animal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []animals.Animal
	for _, pid := range parentIDs {
		for _, cid := range r.db.children[pid] {
			out = append(out, r.db.animals[cid])
		}
	}
	return out, nil
}

func (r *animalRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.nameTaken(name, excludeID), nil
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter, p animals.Page) ([]animals.Animal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	matched := r.match(f)

	start := p.Offset()
	if start >= len(matched) {
		return []animals.Animal{}, nil
	}
	end := start + p.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *animalRepo) Count(ctx context.Context, f animals.Filter) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return len(r.match(f)), nil
}

// match asume el lock tomado. Devuelve las filas en orden de id.
func (r *animalRepo) match(f animals.Filter) []animals.Animal {
	c := r.db.compileAnimalFilter(f)

	var out []animals.Animal
	for _, id := range sortedIDs(r.db.animals) {
		a := r.db.animals[id]
		if c.match(a, len(r.db.children[id])) {
			out = append(out, a)
		}
	}
	return out
}

// checkConstraints emula UNIQUE(name) y las FKs. Asume el lock tomado.
func (r *animalRepo) checkConstraints(a animals.Animal) error {
	if r.nameTaken(a.Name, a.ID) {
		return storage.ErrUniqueViolation
	}
	if a.ParentID != nil {
		if _, ok := r.db.animals[*a.ParentID]; !ok {
			return storage.ErrForeignKeyViolation
		}
	}
	if a.SpeciesID != nil {
		if _, ok := r.db.species[*a.SpeciesID]; !ok {
			return storage.ErrForeignKeyViolation
		}
	}
	return nil
}

func (r *animalRepo) nameTaken(name string, excludeID int64) bool {
	name = strings.TrimSpace(name)
	for id, a := range r.db.animals {
		if id != excludeID && a.Name == name {
			return true
		}
	}
	return false
}
