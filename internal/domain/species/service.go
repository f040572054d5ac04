package species

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/ports/storage"
)

const entity = "species"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name string
}

// Patch: nil = no tocar.
type Patch struct {
	Name *string
}

func (p Patch) apply(s Species) Species {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]Species, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Species, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Species{}, apperr.NotFound(entity, id)
	}
	return sp, err
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Species, error) {
	name := strings.TrimSpace(in.Name)
	if !validName(name) {
		return Species{}, apperr.ErrInvalidInput
	}

	taken, err := s.repo.ExistsByName(ctx, name, 0)
	if err != nil {
		return Species{}, err
	}
	if taken {
		return Species{}, apperr.Conflict(apperr.ConflictDuplicateName, entity)
	}

	id, err := s.repo.Create(ctx, Species{Name: name})
	if err != nil {
		if storage.IsIntegrity(err) {
			return Species{}, apperr.Integrity(entity, err)
		}
		return Species{}, err
	}
	return s.Get(ctx, id)
}

// Update aplica un reemplazo completo (partial=false) o sólo los campos presentes.
func (s *Service) Update(ctx context.Context, id int64, p Patch, partial bool) (Species, error) {
	if !partial && p.Name == nil {
		return Species{}, apperr.ErrInvalidInput
	}

	cur, err := s.Get(ctx, id)
	if err != nil {
		return Species{}, err
	}

	next := p.apply(cur)
	if !validName(next.Name) {
		return Species{}, apperr.ErrInvalidInput
	}

	taken, err := s.repo.ExistsByName(ctx, next.Name, id)
	if err != nil {
		return Species{}, err
	}
	if taken {
		return Species{}, apperr.Conflict(apperr.ConflictDuplicateName, entity)
	}

	if err := s.repo.Update(ctx, next); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return Species{}, apperr.NotFound(entity, id)
		case storage.IsIntegrity(err):
			return Species{}, apperr.Integrity(entity, err)
		default:
			return Species{}, err
		}
	}
	return s.Get(ctx, id)
}

// Delete es incondicional: los animales que la referencian quedan sin especie.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func validName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= MaxNameLength
}
