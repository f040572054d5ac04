package animals

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/domain/species"

	"github.com/graph-gophers/dataloader"
)

type ctxKey string

const speciesLoaderKey ctxKey = "speciesLoader"

// NewSpeciesLoader arma un loader de especies con caché propia. Vive lo que
// dura un request: la validación de species_id y la materialización de la
// respuesta comparten la misma lectura.
func NewSpeciesLoader(reader SpeciesReader) *dataloader.Loader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))

		ids := make([]int64, 0, len(keys))
		for i, k := range keys {
			id, err := strconv.ParseInt(k.String(), 10, 64)
			if err != nil {
				results[i] = &dataloader.Result{Error: err}
				continue
			}
			ids = append(ids, id)
		}

		found, err := reader.GetByIDs(ctx, ids)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		byID := make(map[int64]species.Species, len(found))
		for _, sp := range found {
			byID[sp.ID] = sp
		}
		for i, k := range keys {
			if results[i] != nil {
				continue
			}
			id, _ := strconv.ParseInt(k.String(), 10, 64)
			if sp, ok := byID[id]; ok {
				results[i] = &dataloader.Result{Data: sp}
			} else {
				// especie inexistente o borrada entre lecturas
				results[i] = &dataloader.Result{}
			}
		}
		return results
	}

	return dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(2*time.Millisecond))
}

// LoaderMiddleware deja un loader de especies nuevo en el contexto de cada request.
func LoaderMiddleware(reader SpeciesReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithSpeciesLoader(r.Context(), NewSpeciesLoader(reader))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithSpeciesLoader(ctx context.Context, l *dataloader.Loader) context.Context {
	return context.WithValue(ctx, speciesLoaderKey, l)
}

func SpeciesLoaderFromContext(ctx context.Context) *dataloader.Loader {
	if l, ok := ctx.Value(speciesLoaderKey).(*dataloader.Loader); ok {
		return l
	}
	return nil
}

// speciesLoader usa el loader del request; fuera de HTTP (tests, CLI) arma uno descartable.
func (s *Service) speciesLoader(ctx context.Context) *dataloader.Loader {
	if l := SpeciesLoaderFromContext(ctx); l != nil {
		return l
	}
	return NewSpeciesLoader(s.species)
}

func speciesKey(id int64) dataloader.Key {
	return dataloader.StringKey(strconv.FormatInt(id, 10))
}

// loadSpecies resuelve todas las especies pedidas; las inexistentes no aparecen en el mapa.
func (s *Service) loadSpecies(ctx context.Context, ids []int64) (map[int64]species.Species, error) {
	out := make(map[int64]species.Species, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make(dataloader.Keys, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, speciesKey(id))
	}

	values, errs := s.speciesLoader(ctx).LoadMany(ctx, keys)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, v := range values {
		if sp, ok := v.(species.Species); ok {
			out[sp.ID] = sp
		}
	}
	return out, nil
}

func (s *Service) requireSpecies(ctx context.Context, speciesID int64) error {
	v, err := s.speciesLoader(ctx).Load(ctx, speciesKey(speciesID))()
	if err != nil {
		return err
	}
	if _, ok := v.(species.Species); !ok {
		return apperr.NotFound("species", speciesID)
	}
	return nil
}
