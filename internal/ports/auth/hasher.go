package auth

import "errors"

var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher abstrae el algoritmo de hash de contraseñas.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare devuelve ErrPasswordMismatch si no coinciden.
	Compare(hashed, password string) error
}
