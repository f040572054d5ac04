package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/ports/storage"
)

const entity = "animal"

type Service struct {
	repo    Repository
	species SpeciesReader
	now     func() time.Time
}

func NewService(repo Repository, species SpeciesReader) *Service {
	return &Service{
		repo:    repo,
		species: species,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name      string
	SpeciesID *int64
	Age       int
	Sex       Sex
	ParentID  *int64
	CreatedAt *time.Time // nil = ahora
}

// List devuelve una página ya materializada y el total de filas que cumplen el filtro.
func (s *Service) List(ctx context.Context, f Filter, p Page) (PageResult, error) {
	if err := f.Validate(); err != nil {
		return PageResult{}, err
	}
	if err := p.Validate(); err != nil {
		return PageResult{}, err
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return PageResult{}, fmt.Errorf("count animals: %w", err)
	}

	rows, err := s.repo.List(ctx, f, p)
	if err != nil {
		return PageResult{}, fmt.Errorf("list animals: %w", err)
	}

	items, err := s.attach(ctx, rows)
	if err != nil {
		return PageResult{}, err
	}
	return PageResult{Items: items, Total: total, Page: p}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Detail{}, apperr.NotFound(entity, id)
		}
		return Detail{}, err
	}

	items, err := s.attach(ctx, []Animal{a})
	if err != nil {
		return Detail{}, err
	}
	return items[0], nil
}

// Create valida, en orden: padre, especie y nombre único. Ninguna escritura
// ocurre si falla una precondición.
func (s *Service) Create(ctx context.Context, in CreateInput) (Detail, error) {
	a := Animal{
		Name:      strings.TrimSpace(in.Name),
		SpeciesID: in.SpeciesID,
		Age:       in.Age,
		Sex:       in.Sex,
		ParentID:  in.ParentID,
		CreatedAt: s.now().UTC(),
	}
	if in.CreatedAt != nil {
		a.CreatedAt = in.CreatedAt.UTC()
	}
	if err := s.validate(a); err != nil {
		return Detail{}, err
	}

	if a.ParentID != nil {
		if err := s.requireParent(ctx, *a.ParentID); err != nil {
			return Detail{}, err
		}
	}
	if a.SpeciesID != nil {
		if err := s.requireSpecies(ctx, *a.SpeciesID); err != nil {
			return Detail{}, err
		}
	}
	if err := s.requireFreeName(ctx, a.Name, 0); err != nil {
		return Detail{}, err
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		if storage.IsIntegrity(err) {
			return Detail{}, apperr.Integrity(entity, err)
		}
		return Detail{}, fmt.Errorf("create animal: %w", err)
	}
	return s.Get(ctx, id)
}

// Update con partial=false exige name, age y sex; species_id y parent_id
// ausentes quedan en NULL. Con partial=true sólo se tocan los campos presentes.
func (s *Service) Update(ctx context.Context, id int64, p Patch, partial bool) (Detail, error) {
	if !partial {
		if !p.complete() {
			return Detail{}, fmt.Errorf("%w: name, age and sex are required", apperr.ErrInvalidInput)
		}
		p.SpeciesID.Set = true
		p.ParentID.Set = true
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Detail{}, apperr.NotFound(entity, id)
		}
		return Detail{}, err
	}

	next := merge(cur, p)
	if err := s.validate(next); err != nil {
		return Detail{}, err
	}

	if p.ParentID.Set && next.ParentID != nil {
		if err := s.requireAcyclicParent(ctx, id, *next.ParentID); err != nil {
			return Detail{}, err
		}
	}
	if p.SpeciesID.Set && next.SpeciesID != nil {
		if err := s.requireSpecies(ctx, *next.SpeciesID); err != nil {
			return Detail{}, err
		}
	}
	if err := s.requireFreeName(ctx, next.Name, id); err != nil {
		return Detail{}, err
	}

	if err := s.repo.Update(ctx, next); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return Detail{}, apperr.NotFound(entity, id)
		case storage.IsIntegrity(err):
			return Detail{}, apperr.Integrity(entity, err)
		default:
			return Detail{}, fmt.Errorf("update animal: %w", err)
		}
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func (s *Service) validate(a Animal) error {
	switch {
	case a.Name == "" || utf8.RuneCountInString(a.Name) > MaxNameLength:
		return fmt.Errorf("%w: name must be 1-%d characters", apperr.ErrInvalidInput, MaxNameLength)
	case a.Age < 0 || a.Age > MaxAge:
		return fmt.Errorf("%w: age must be between 0 and %d", apperr.ErrInvalidInput, MaxAge)
	case !a.Sex.Valid():
		return fmt.Errorf("%w: sex must be male, female or other", apperr.ErrInvalidInput)
	case a.CreatedAt.After(s.now()):
		return fmt.Errorf("%w: created_at cannot be in the future", apperr.ErrInvalidInput)
	}
	return nil
}

func (s *Service) requireParent(ctx context.Context, parentID int64) error {
	if _, err := s.repo.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("parent", parentID)
		}
		return err
	}
	return nil
}

// requireAcyclicParent sube por la cadena de ancestros de parentID; si aparece
// id, asignar ese padre crearía un ciclo.
func (s *Service) requireAcyclicParent(ctx context.Context, id, parentID int64) error {
	seen := make(map[int64]bool)
	for cur := parentID; ; {
		if cur == id {
			return apperr.Conflict(apperr.ConflictParentCycle, entity)
		}
		if seen[cur] {
			return nil
		}
		seen[cur] = true

		a, err := s.repo.GetByID(ctx, cur)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) && cur == parentID {
				return apperr.NotFound("parent", parentID)
			}
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}
		if a.ParentID == nil {
			return nil
		}
		cur = *a.ParentID
	}
}

func (s *Service) requireFreeName(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict(apperr.ConflictDuplicateName, entity)
	}
	return nil
}
