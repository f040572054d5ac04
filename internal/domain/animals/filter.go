package animals

import (
	"errors"
	"fmt"
)

// ErrMalformedFilter indica que un Filter o Page llegó al core sin validar.
// No es un error de usuario: el borde HTTP valida antes.
var ErrMalformedFilter = errors.New("malformed animal filter")

const (
	DefaultPageSize  = 10
	MaxPageSize      = 100
	MaxChildrenBound = 100
)

// Filter: todos los campos son opcionales y se combinan con AND.
type Filter struct {
	Name    string // substring, case-insensitive
	Sex     Sex
	MinAge  *int
	MaxAge  *int
	Species string // nombre exacto

	OnlyParents     bool // al menos un hijo
	OnlyChildren    bool // tiene padre
	WithoutChildren bool // ningún hijo

	MinChildren *int
	MaxChildren *int
}

// HasChildBounds indica si el filtro necesita contar hijos (self-join + agregación).
func (f Filter) HasChildBounds() bool {
	return f.MinChildren != nil || f.MaxChildren != nil
}

func (f Filter) Validate() error {
	if f.Sex != "" && !f.Sex.Valid() {
		return fmt.Errorf("%w: sex %q", ErrMalformedFilter, f.Sex)
	}
	if f.MinAge != nil && f.MaxAge != nil && *f.MinAge > *f.MaxAge {
		return fmt.Errorf("%w: min_age > max_age", ErrMalformedFilter)
	}
	if f.MinChildren != nil && f.MaxChildren != nil && *f.MinChildren > *f.MaxChildren {
		return fmt.Errorf("%w: min_children > max_children", ErrMalformedFilter)
	}
	if f.WithoutChildren && (f.OnlyChildren || f.OnlyParents) {
		return fmt.Errorf("%w: without_children combined with only_children/only_parents", ErrMalformedFilter)
	}
	return nil
}

// Page es 1-based.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) Validate() error {
	if p.Number < 1 || p.Size < 1 || p.Size > MaxPageSize {
		return fmt.Errorf("%w: page=%d size=%d", ErrMalformedFilter, p.Number, p.Size)
	}
	return nil
}
