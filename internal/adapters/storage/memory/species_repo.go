package memory

import (
	"context"
	"strings"

	"animal-registry/internal/domain/species"
	"animal-registry/internal/ports/storage"
)

type speciesRepo struct {
	db *DB
}

func NewSpeciesRepo(db *DB) species.Repository {
	return &speciesRepo{db: db}
}

func (r *speciesRepo) Create(ctx context.Context, s species.Species) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.nameTaken(s.Name, 0) {
		return 0, storage.ErrUniqueViolation
	}
	r.db.lastSpeciesID++
	s.ID = r.db.lastSpeciesID
	r.db.species[s.ID] = s
	return s.ID, nil
}

func (r *speciesRepo) Update(ctx context.Context, s species.Species) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.species[s.ID]; !ok {
		return storage.ErrNotFound
	}
	if r.nameTaken(s.Name, s.ID) {
		return storage.ErrUniqueViolation
	}
	r.db.species[s.ID] = s
	return nil
}

// Delete equivale a ON DELETE SET NULL sobre animals.species_id.
func (r *speciesRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.species[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.db.species, id)

	for aid, a := range r.db.animals {
		if a.SpeciesID != nil && *a.SpeciesID == id {
			a.SpeciesID = nil
			r.db.animals[aid] = a
		}
	}
	return nil
}

func (r *speciesRepo) GetByID(ctx context.Context, id int64) (species.Species, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.species[id]
	if !ok {
		return species.Species{}, storage.ErrNotFound
	}
	return s, nil
}

func (r *speciesRepo) GetByIDs(ctx context.Context, ids []int64) ([]species.Species, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]species.Species, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.db.species[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *speciesRepo) List(ctx context.Context) ([]species.Species, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]species.Species, 0, len(r.db.species))
	for _, id := range sortedIDs(r.db.species) {
		out = append(out, r.db.species[id])
	}
	return out, nil
}

func (r *speciesRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.nameTaken(name, excludeID), nil
}

// nameTaken asume el lock tomado.
func (r *speciesRepo) nameTaken(name string, excludeID int64) bool {
	name = strings.TrimSpace(name)
	for id, s := range r.db.species {
		if id != excludeID && s.Name == name {
			return true
		}
	}
	return false
}
