package memory

import (
	"slices"
	"sync"

	"animal-registry/internal/domain/animals"
	"animal-registry/internal/domain/species"
	"animal-registry/internal/domain/users"
)

// DB es el estado compartido por los repos in-memory. Un único mutex cubre
// las tres tablas para poder aplicar FKs y nulificaciones atómicamente.
type DB struct {
	mu sync.RWMutex

	species map[int64]species.Species
	animals map[int64]animals.Animal
	users   map[int64]users.User

	// children: parent id -> ids de hijos, ordenados por id (orden de alta).
	children map[int64][]int64

	lastSpeciesID int64
	lastAnimalID  int64
	lastUserID    int64
}

func NewDB() *DB {
	return &DB{
		species:  make(map[int64]species.Species),
		animals:  make(map[int64]animals.Animal),
		users:    make(map[int64]users.User),
		children: make(map[int64][]int64),
	}
}

func (db *DB) linkChild(parentID, childID int64) {
	ids := db.children[parentID]
	i, found := slices.BinarySearch(ids, childID)
	if found {
		return
	}
	db.children[parentID] = slices.Insert(ids, i, childID)
}

func (db *DB) unlinkChild(parentID, childID int64) {
	ids := db.children[parentID]
	i, found := slices.BinarySearch(ids, childID)
	if !found {
		return
	}
	ids = slices.Delete(ids, i, i+1)
	if len(ids) == 0 {
		delete(db.children, parentID)
		return
	}
	db.children[parentID] = ids
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
