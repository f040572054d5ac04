package species

import "context"

type Repository interface {
	Create(ctx context.Context, s Species) (int64, error)
	Update(ctx context.Context, s Species) error
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (Species, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Species, error)
	List(ctx context.Context) ([]Species, error)

	// ExistsByName ignora el registro excludeID (0 = no excluir).
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}
