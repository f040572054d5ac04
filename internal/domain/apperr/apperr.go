// Package apperr define las clases de error compartidas por los módulos de dominio.
// Los handlers traducen estas clases a status HTTP (ver platform/respond).
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type ConflictKind string

const (
	ConflictDuplicateName ConflictKind = "duplicate-name"
	ConflictIntegrity     ConflictKind = "integrity"
	ConflictParentCycle   ConflictKind = "parent-cycle"
	ConflictUsernameTaken ConflictKind = "username-taken"
)

// NotFoundError identifica la entidad y el id que no existen.
type NotFoundError struct {
	Entity string
	ID     int64
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ConflictError struct {
	Kind   ConflictKind
	Entity string
	Err    error // causa de storage, si la hubo
}

func Conflict(kind ConflictKind, entity string) error {
	return &ConflictError{Kind: kind, Entity: entity}
}

// Integrity envuelve una violación de constraint detectada por el storage.
func Integrity(entity string, cause error) error {
	return &ConflictError{Kind: ConflictIntegrity, Entity: entity, Err: cause}
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictDuplicateName:
		return fmt.Sprintf("%s with this name already exists", e.Entity)
	case ConflictParentCycle:
		return fmt.Sprintf("%s cannot be its own ancestor", e.Entity)
	case ConflictUsernameTaken:
		return "username already registered"
	default:
		return fmt.Sprintf("integrity error while writing %s", e.Entity)
	}
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Err }

// IsConflict devuelve el kind si err es un conflicto.
func IsConflict(err error) (ConflictKind, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
