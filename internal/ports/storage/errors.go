// Package storage define los errores que cualquier adapter de persistencia
// debe devolver para que el dominio pueda reaccionar sin conocer el driver.
package storage

import "errors"

var (
	ErrNotFound            = errors.New("storage: not found")
	ErrUniqueViolation     = errors.New("storage: unique violation")
	ErrForeignKeyViolation = errors.New("storage: foreign key violation")
)

// IsIntegrity reporta si err es una violación de constraint (unique o FK).
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrUniqueViolation) || errors.Is(err, ErrForeignKeyViolation)
}
