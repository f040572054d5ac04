// Package bcrypt implementa auth.PasswordHasher con golang.org/x/crypto/bcrypt.
package bcrypt

import (
	"errors"

	"animal-registry/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

type Hasher struct {
	cost int
}

var _ auth.PasswordHasher = (*Hasher)(nil)

// NewHasher usa bcrypt.DefaultCost si cost está fuera de rango.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Compare(hashed, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return auth.ErrPasswordMismatch
	}
	return err
}
