package animals

import (
	"strings"
	"time"
)

// OptionalID distingue "no enviado" (Set=false) de "enviado como null" (Set=true, Value=nil).
type OptionalID struct {
	Set   bool
	Value *int64
}

func SetID(v *int64) OptionalID { return OptionalID{Set: true, Value: v} }

// Patch lleva sólo los campos a modificar. Nil = no tocar.
type Patch struct {
	Name      *string
	Age       *int
	Sex       *Sex
	SpeciesID OptionalID
	ParentID  OptionalID
	CreatedAt *time.Time
}

// complete reporta si el patch sirve como reemplazo completo (PUT).
func (p Patch) complete() bool {
	return p.Name != nil && p.Age != nil && p.Sex != nil
}

func merge(a Animal, p Patch) Animal {
	if p.Name != nil {
		a.Name = strings.TrimSpace(*p.Name)
	}
	if p.Age != nil {
		a.Age = *p.Age
	}
	if p.Sex != nil {
		a.Sex = *p.Sex
	}
	if p.SpeciesID.Set {
		a.SpeciesID = p.SpeciesID.Value
	}
	if p.ParentID.Set {
		a.ParentID = p.ParentID.Value
	}
	if p.CreatedAt != nil {
		a.CreatedAt = *p.CreatedAt
	}
	return a
}
