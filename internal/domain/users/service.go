package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/ports/auth"
	"animal-registry/internal/ports/storage"
)

var ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", apperr.ErrUnauthorized)

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	issuer auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, hasher auth.PasswordHasher, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return User{}, apperr.ErrInvalidInput
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, apperr.Conflict(apperr.ConflictUsernameTaken, "user")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return User{}, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:       username,
		HashedPassword: hashed,
		CreatedAt:      s.now().UTC(),
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			return User{}, apperr.Conflict(apperr.ConflictUsernameTaken, "user")
		}
		return User{}, err
	}
	u.ID = id
	return u, nil
}

// Login no distingue usuario inexistente de contraseña incorrecta.
func (s *Service) Login(ctx context.Context, username, password string) (auth.Token, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return auth.Token{}, ErrInvalidCredentials
		}
		return auth.Token{}, err
	}

	if err := s.hasher.Compare(u.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return auth.Token{}, ErrInvalidCredentials
		}
		return auth.Token{}, err
	}

	return s.issuer.Issue(ctx, auth.Claims{
		UserID:   strconv.FormatInt(u.ID, 10),
		Username: u.Username,
	})
}

// Current resuelve el usuario dueño de las claims.
func (s *Service) Current(ctx context.Context, c auth.Claims) (User, error) {
	if strings.TrimSpace(c.Username) == "" {
		return User{}, apperr.ErrUnauthorized
	}
	u, err := s.repo.GetByUsername(ctx, c.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			id, _ := strconv.ParseInt(c.UserID, 10, 64)
			return User{}, apperr.NotFound("user", id)
		}
		return User{}, err
	}
	return u, nil
}
