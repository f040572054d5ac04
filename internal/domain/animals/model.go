package animals

import (
	"time"

	"animal-registry/internal/domain/species"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	default:
		return false
	}
}

const (
	MaxNameLength = 32
	MaxAge        = 150
)

// Animal es la fila persistida. Parent y species se referencian por id;
// las relaciones se materializan en Summary/Detail.
type Animal struct {
	ID        int64
	Name      string
	SpeciesID *int64
	Age       int
	Sex       Sex
	ParentID  *int64
	CreatedAt time.Time
}

// Summary es la forma base: el animal con su especie, sin padre ni hijos.
type Summary struct {
	Animal
	Species *species.Species
}

// Detail agrega padre e hijos (cada hijo con su especie).
type Detail struct {
	Summary
	Parent   *Summary
	Children []Summary
}

type PageResult struct {
	Items []Detail
	Total int
	Page  Page
}
