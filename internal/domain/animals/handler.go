package animals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"animal-registry/internal/domain/species"
	"animal-registry/internal/platform/logger"
	"animal-registry/internal/platform/respond"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRoutes registra las rutas de animales sobre r (montado en /api/v1/animals).
// guard protege las rutas de escritura; puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, guard func(http.Handler) http.Handler) {
	log = log.With(map[string]any{"module": "animals"})

	r.Group(func(r chi.Router) {
		r.Use(LoaderMiddleware(svc.species))

		r.Get("/", listAnimalsHandler(svc, log))
		r.Get("/{animalID}", getAnimalHandler(svc, log))

		r.Group(func(wr chi.Router) {
			if guard != nil {
				wr.Use(guard)
			}
			wr.Post("/add_animal", createAnimalHandler(svc, log))
			wr.Put("/{animalID}", updateAnimalHandler(svc, log, false))
			wr.Patch("/{animalID}", updateAnimalHandler(svc, log, true))
			wr.Delete("/{animalID}", deleteAnimalHandler(svc, log))
		})
	})
}

type speciesRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type animalBaseResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Species   *speciesRef `json:"species"`
	Age       int         `json:"age"`
	Sex       Sex         `json:"sex"`
	CreatedAt time.Time   `json:"created_at"`
}

type animalResponse struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	Species   *speciesRef          `json:"species"`
	Age       int                  `json:"age"`
	Sex       Sex                  `json:"sex"`
	Parent    *animalBaseResponse  `json:"parent"`
	CreatedAt time.Time            `json:"created_at"`
	Children  []animalBaseResponse `json:"children"`
}

type paginatedAnimalsResponse struct {
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
	Animals []animalResponse `json:"animals"`
}

// listAnimalsHandler godoc
// @Summary      Listar animales
// @Description  Lista paginada con filtros combinables (AND). El total respeta los filtros.
// @Tags         animals
// @Produce      json
// @Param        page              query  int     false  "Página (1-based)"  default(1)
// @Param        size              query  int     false  "Tamaño de página (1-100)"  default(10)
// @Param        name              query  string  false  "Substring del nombre"
// @Param        sex               query  string  false  "male|female|other"
// @Param        min_age           query  int     false  "Edad mínima"
// @Param        max_age           query  int     false  "Edad máxima"
// @Param        species           query  string  false  "Nombre exacto de la especie"
// @Param        only_parents      query  bool    false  "Sólo animales con hijos"
// @Param        only_children     query  bool    false  "Sólo animales con padre"
// @Param        without_children  query  bool    false  "Sólo animales sin hijos"
// @Param        min_children      query  int     false  "Mínimo de hijos"
// @Param        max_children      query  int     false  "Máximo de hijos"
// @Success      200  {object}  animals.paginatedAnimalsResponse
// @Failure      400  {object}  map[string]any
// @Router       /api/v1/animals/ [get]
func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseListQuery(r)
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		if err := q.Validate(); err != nil {
			respond.Fail(w, log, err)
			return
		}

		res, err := svc.List(r.Context(), q.filter(), Page{Number: q.Page, Size: q.Size})
		if err != nil {
			respond.Fail(w, log, err)
			return
		}

		out := paginatedAnimalsResponse{
			Total:   res.Total,
			Page:    res.Page.Number,
			Size:    res.Page.Size,
			Animals: make([]animalResponse, 0, len(res.Items)),
		}
		for _, d := range res.Items {
			out.Animals = append(out.Animals, toAnimalResponse(d))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary      Obtener animal
// @Tags         animals
// @Produce      json
// @Param        animalID  path  int  true  "Animal ID"
// @Success      200  {object}  animals.animalResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/animals/{animalID} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalIDParam(w, r)
		if !ok {
			return
		}

		d, err := svc.Get(r.Context(), id)
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toAnimalResponse(d))
	}
}

// createAnimalHandler godoc
// @Summary      Crear animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Param        body  body  animals.animalRequest  true  "Animal"
// @Success      201  {object}  animals.animalResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/animals/add_animal [post]
func createAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req animalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.validate(true, time.Now()); err != nil {
			respond.Fail(w, log, err)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			Name:      *req.Name,
			SpeciesID: req.SpeciesID.Value,
			Age:       *req.Age,
			Sex:       Sex(*req.Sex),
			ParentID:  req.ParentID.Value,
			CreatedAt: req.CreatedAt,
		})
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toAnimalResponse(d))
	}
}

// updateAnimalHandler godoc
// @Summary      Actualizar animal (PUT completo, PATCH parcial)
// @Description  En PATCH, "parent_id": null o "species_id": null limpian la relación.
// @Tags         animals
// @Accept       json
// @Produce      json
// @Param        animalID  path  int  true  "Animal ID"
// @Param        body  body  animals.animalRequest  true  "Campos"
// @Success      200  {object}  animals.animalResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/animals/{animalID} [put]
// @Router       /api/v1/animals/{animalID} [patch]
func updateAnimalHandler(svc *Service, log logger.Logger, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalIDParam(w, r)
		if !ok {
			return
		}

		var req animalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.validate(!partial, time.Now()); err != nil {
			respond.Fail(w, log, err)
			return
		}

		d, err := svc.Update(r.Context(), id, req.patch(), partial)
		if err != nil {
			respond.Fail(w, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toAnimalResponse(d))
	}
}

// deleteAnimalHandler godoc
// @Summary      Eliminar animal
// @Description  Los hijos del animal quedan sin padre.
// @Tags         animals
// @Param        animalID  path  int  true  "Animal ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalIDParam(w, r)
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

func animalIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
	if err != nil || id < 1 {
		respond.Detail(w, http.StatusBadRequest, "animalID must be a positive integer")
		return 0, false
	}
	return id, true
}

func toSpeciesRef(sp *species.Species) *speciesRef {
	if sp == nil {
		return nil
	}
	return &speciesRef{ID: sp.ID, Name: sp.Name}
}

func toAnimalBaseResponse(s Summary) animalBaseResponse {
	return animalBaseResponse{
		ID:        s.ID,
		Name:      s.Name,
		Species:   toSpeciesRef(s.Species),
		Age:       s.Age,
		Sex:       s.Sex,
		CreatedAt: s.CreatedAt,
	}
}

func toAnimalResponse(d Detail) animalResponse {
	out := animalResponse{
		ID:        d.ID,
		Name:      d.Name,
		Species:   toSpeciesRef(d.Species),
		Age:       d.Age,
		Sex:       d.Sex,
		CreatedAt: d.CreatedAt,
		Children:  make([]animalBaseResponse, 0, len(d.Children)),
	}
	if d.Parent != nil {
		p := toAnimalBaseResponse(*d.Parent)
		out.Parent = &p
	}
	for _, c := range d.Children {
		out.Children = append(out.Children, toAnimalBaseResponse(c))
	}
	return out
}

// ---- request parsing / validación de borde ----

// optionalID detecta presencia del campo para poder diferenciar null de "no enviado".
type optionalID struct {
	Set   bool
	Value *int64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type animalRequest struct {
	Name      *string    `json:"name"`
	SpeciesID optionalID `json:"species_id" swaggertype:"integer"`
	Age       *int       `json:"age"`
	Sex       *string    `json:"sex"`
	ParentID  optionalID `json:"parent_id" swaggertype:"integer"`
	CreatedAt *time.Time `json:"created_at"`
}

func (r animalRequest) validate(complete bool, now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(complete, validation.NotNil),
			validation.When(r.Name != nil, validation.Required),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Age,
			validation.When(complete, validation.NotNil),
			validation.Min(0),
			validation.Max(MaxAge),
		),
		validation.Field(&r.Sex,
			validation.When(complete, validation.NotNil),
			validation.When(r.Sex != nil, validation.Required),
			validation.In(string(SexMale), string(SexFemale), string(SexOther)),
		),
		validation.Field(&r.SpeciesID, validation.By(positiveID)),
		validation.Field(&r.ParentID, validation.By(positiveID)),
		validation.Field(&r.CreatedAt, validation.By(notAfter(now))),
	)
}

func (r animalRequest) patch() Patch {
	p := Patch{
		Name:      r.Name,
		Age:       r.Age,
		SpeciesID: OptionalID{Set: r.SpeciesID.Set, Value: r.SpeciesID.Value},
		ParentID:  OptionalID{Set: r.ParentID.Set, Value: r.ParentID.Value},
		CreatedAt: r.CreatedAt,
	}
	if r.Sex != nil {
		sx := Sex(*r.Sex)
		p.Sex = &sx
	}
	return p
}

func positiveID(v any) error {
	o, _ := v.(optionalID)
	if o.Value != nil && *o.Value < 1 {
		return errors.New("must be greater than or equal to 1")
	}
	return nil
}

func notAfter(now time.Time) validation.RuleFunc {
	return func(v any) error {
		t, _ := v.(*time.Time)
		if t != nil && t.After(now) {
			return errors.New("cannot be in the future")
		}
		return nil
	}
}

// listQuery usa tags json sólo para que ozzo reporte los errores con el nombre del query param.
type listQuery struct {
	Page int `json:"page"`
	Size int `json:"size"`

	Name    string `json:"name"`
	Sex     string `json:"sex"`
	MinAge  *int   `json:"min_age"`
	MaxAge  *int   `json:"max_age"`
	Species string `json:"species"`

	OnlyParents     bool `json:"only_parents"`
	OnlyChildren    bool `json:"only_children"`
	WithoutChildren bool `json:"without_children"`

	MinChildren *int `json:"min_children"`
	MaxChildren *int `json:"max_children"`
}

func parseListQuery(r *http.Request) (listQuery, error) {
	qv := r.URL.Query()
	q := listQuery{
		Page:    1,
		Size:    DefaultPageSize,
		Name:    qv.Get("name"),
		Sex:     qv.Get("sex"),
		Species: qv.Get("species"),
	}

	errs := validation.Errors{}
	intParam := func(key string, dst *int) {
		if raw := qv.Get(key); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				errs[key] = errors.New("must be an integer")
				return
			}
			*dst = v
		}
	}
	optIntParam := func(key string) *int {
		var v int
		if qv.Get(key) == "" {
			return nil
		}
		intParam(key, &v)
		return &v
	}
	boolParam := func(key string) bool {
		raw := qv.Get(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs[key] = errors.New("must be a boolean")
		}
		return v
	}

	intParam("page", &q.Page)
	intParam("size", &q.Size)
	q.MinAge = optIntParam("min_age")
	q.MaxAge = optIntParam("max_age")
	q.MinChildren = optIntParam("min_children")
	q.MaxChildren = optIntParam("max_children")
	q.OnlyParents = boolParam("only_parents")
	q.OnlyChildren = boolParam("only_children")
	q.WithoutChildren = boolParam("without_children")

	if len(errs) > 0 {
		return listQuery{}, errs
	}
	return q, nil
}

func (q listQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, validation.By(intAtLeast(1))),
		validation.Field(&q.Size, validation.By(intAtLeast(1)), validation.Max(MaxPageSize)),
		validation.Field(&q.Name, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&q.Sex, validation.In(string(SexMale), string(SexFemale), string(SexOther))),
		validation.Field(&q.MinAge, validation.Min(0), validation.Max(MaxAge)),
		validation.Field(&q.MaxAge, validation.Min(0), validation.Max(MaxAge), validation.By(notBelow(q.MinAge, "min_age"))),
		validation.Field(&q.MinChildren, validation.Min(0), validation.Max(MaxChildrenBound)),
		validation.Field(&q.MaxChildren, validation.Min(0), validation.Max(MaxChildrenBound), validation.By(notBelow(q.MinChildren, "min_children"))),
		validation.Field(&q.WithoutChildren, validation.By(func(any) error {
			switch {
			case q.WithoutChildren && q.OnlyChildren:
				return errors.New("cannot be combined with only_children")
			case q.WithoutChildren && q.OnlyParents:
				return errors.New("cannot be combined with only_parents")
			}
			return nil
		})),
	)
}

func (q listQuery) filter() Filter {
	return Filter{
		Name:            q.Name,
		Sex:             Sex(q.Sex),
		MinAge:          q.MinAge,
		MaxAge:          q.MaxAge,
		Species:         q.Species,
		OnlyParents:     q.OnlyParents,
		OnlyChildren:    q.OnlyChildren,
		WithoutChildren: q.WithoutChildren,
		MinChildren:     q.MinChildren,
		MaxChildren:     q.MaxChildren,
	}
}

func intAtLeast(min int) validation.RuleFunc {
	return func(v any) error {
		if n, _ := v.(int); n < min {
			return fmt.Errorf("must be no less than %d", min)
		}
		return nil
	}
}

func notBelow(lower *int, name string) validation.RuleFunc {
	return func(v any) error {
		upper, _ := v.(*int)
		if lower == nil || upper == nil {
			return nil
		}
		if *upper < *lower {
			return fmt.Errorf("must be greater than or equal to %s", name)
		}
		return nil
	}
}
