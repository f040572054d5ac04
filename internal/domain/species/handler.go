package species

import (
	"encoding/json"
	"net/http"
	"strconv"

	"animal-registry/internal/platform/logger"
	"animal-registry/internal/platform/respond"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRoutes monta /species bajo el router recibido (normalmente /api/v1/animals).
// guard protege las rutas de escritura; puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, guard func(http.Handler) http.Handler) {
	log = log.With(map[string]any{"module": "species"})

	r.Route("/species", func(sr chi.Router) {
		sr.Get("/", listSpeciesHandler(svc, log))
		sr.Get("/{speciesID}", getSpeciesHandler(svc, log))

		sr.Group(func(wr chi.Router) {
			if guard != nil {
				wr.Use(guard)
			}
			wr.Post("/add_specie", createSpeciesHandler(svc, log))
			wr.Put("/{speciesID}", updateSpeciesHandler(svc, log, false))
			wr.Patch("/{speciesID}", updateSpeciesHandler(svc, log, true))
			wr.Delete("/{speciesID}", deleteSpeciesHandler(svc, log))
		})
	})
}

type speciesRequest struct {
	Name *string `json:"name"`
}

func (r speciesRequest) validate(partial bool) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(!partial, validation.NotNil),
			validation.When(r.Name != nil, validation.Required),
			validation.RuneLength(1, MaxNameLength),
		),
	)
}

type speciesResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listSpeciesHandler godoc
// @Summary      Listar especies
// @Tags         species
// @Produce      json
// @Success      200  {array}   species.speciesResponse
// @Router       /api/v1/animals/species/ [get]
func listSpeciesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Fail(w, log, err)
			return
		}

		out := make([]speciesResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toSpeciesResponse(s))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getSpeciesHandler godoc
// @Summary      Obtener especie
// @Tags         species
// @Produce      json
// @Param        speciesID  path  int  true  "Species ID"
// @Success      200  {object}  species.speciesResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/animals/species/{speciesID} [get]
func getSpeciesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := speciesIDParam(w, r)
		if !ok {
			return
		}

		sp, err := svc.Get(r.Context(), id)
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toSpeciesResponse(sp))
	}
}

// createSpeciesHandler godoc
// @Summary      Crear especie
// @Tags         species
// @Accept       json
// @Produce      json
// @Param        body  body  species.speciesRequest  true  "Species"
// @Success      201  {object}  species.speciesResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/animals/species/add_specie [post]
func createSpeciesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req speciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.validate(false); err != nil {
			respond.Fail(w, log, err)
			return
		}

		sp, err := svc.Create(r.Context(), CreateInput{Name: *req.Name})
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toSpeciesResponse(sp))
	}
}

// updateSpeciesHandler godoc
// @Summary      Actualizar especie (PUT completo, PATCH parcial)
// @Tags         species
// @Accept       json
// @Produce      json
// @Param        speciesID  path  int  true  "Species ID"
// @Param        body  body  species.speciesRequest  true  "Species"
// @Success      200  {object}  species.speciesResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/animals/species/{speciesID} [put]
// @Router       /api/v1/animals/species/{speciesID} [patch]
func updateSpeciesHandler(svc *Service, log logger.Logger, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := speciesIDParam(w, r)
		if !ok {
			return
		}

		var req speciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.validate(partial); err != nil {
			respond.Fail(w, log, err)
			return
		}

		sp, err := svc.Update(r.Context(), id, Patch{Name: req.Name}, partial)
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toSpeciesResponse(sp))
	}
}

// deleteSpeciesHandler godoc
// @Summary      Eliminar especie
// @Tags         species
// @Param        speciesID  path  int  true  "Species ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/animals/species/{speciesID} [delete]
func deleteSpeciesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := speciesIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			respond.Fail(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func speciesIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "speciesID"), 10, 64)
	if err != nil || id < 1 {
		respond.Detail(w, http.StatusBadRequest, "speciesID must be a positive integer")
		return 0, false
	}
	return id, true
}

func toSpeciesResponse(s Species) speciesResponse {
	return speciesResponse{ID: s.ID, Name: s.Name}
}
