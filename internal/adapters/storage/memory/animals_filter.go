package memory

import (
	"strings"

	"animal-registry/internal/domain/animals"
)

// animalPredicate recibe la fila y su cantidad de hijos según el índice de adyacencia.
type animalPredicate func(a animals.Animal, childCount int) bool

// compiledFilter separa los predicados de fila (where) de los que dependen
// del conteo de hijos (having), igual que la versión SQL.
type compiledFilter struct {
	where  []animalPredicate
	having []animalPredicate
}

func (c compiledFilter) match(a animals.Animal, childCount int) bool {
	for _, p := range c.where {
		if !p(a, childCount) {
			return false
		}
	}
	for _, p := range c.having {
		if !p(a, childCount) {
			return false
		}
	}
	return true
}

// compileAnimalFilter asume el lock de db tomado (resuelve species por nombre).
func (db *DB) compileAnimalFilter(f animals.Filter) compiledFilter {
	var c compiledFilter

	if f.Name != "" {
		needle := strings.ToLower(f.Name)
		c.where = append(c.where, func(a animals.Animal, _ int) bool {
			return strings.Contains(strings.ToLower(a.Name), needle)
		})
	}
	if f.Sex != "" {
		c.where = append(c.where, func(a animals.Animal, _ int) bool { return a.Sex == f.Sex })
	}
	if f.MinAge != nil {
		min := *f.MinAge
		c.where = append(c.where, func(a animals.Animal, _ int) bool { return a.Age >= min })
	}
	if f.MaxAge != nil {
		max := *f.MaxAge
		c.where = append(c.where, func(a animals.Animal, _ int) bool { return a.Age <= max })
	}
	if f.Species != "" {
		var speciesID int64
		for id, s := range db.species {
			if s.Name == f.Species {
				speciesID = id
				break
			}
		}
		c.where = append(c.where, func(a animals.Animal, _ int) bool {
			return speciesID != 0 && a.SpeciesID != nil && *a.SpeciesID == speciesID
		})
	}
	if f.OnlyParents {
		c.where = append(c.where, func(_ animals.Animal, n int) bool { return n > 0 })
	}
	if f.OnlyChildren {
		c.where = append(c.where, func(a animals.Animal, _ int) bool { return a.ParentID != nil })
	}
	if f.WithoutChildren {
		c.where = append(c.where, func(_ animals.Animal, n int) bool { return n == 0 })
	}

	if f.MinChildren != nil {
		min := *f.MinChildren
		c.having = append(c.having, func(_ animals.Animal, n int) bool { return n >= min })
	}
	if f.MaxChildren != nil {
		max := *f.MaxChildren
		c.having = append(c.having, func(_ animals.Animal, n int) bool { return n <= max })
	}
	return c
}
