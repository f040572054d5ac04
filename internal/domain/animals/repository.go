package animals

import (
	"context"

	"animal-registry/internal/domain/species"
)

type Repository interface {
	Create(ctx context.Context, a Animal) (int64, error)
	Update(ctx context.Context, a Animal) error
	// Delete deja huérfanos (parent_id = NULL) a los hijos del animal borrado.
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (Animal, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Animal, error)
	// ListChildren devuelve los hijos de todos los parentIDs, ordenados por id.
	ListChildren(ctx context.Context, parentIDs []int64) ([]Animal, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	List(ctx context.Context, f Filter, p Page) ([]Animal, error)
	Count(ctx context.Context, f Filter) (int, error)
}

// SpeciesReader es lo que animals necesita del repo de especies.
type SpeciesReader interface {
	GetByID(ctx context.Context, id int64) (species.Species, error)
	GetByIDs(ctx context.Context, ids []int64) ([]species.Species, error)
}
