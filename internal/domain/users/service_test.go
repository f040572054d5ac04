package users_test

import (
	"context"
	"errors"
	"testing"

	"animal-registry/internal/adapters/auth/bcrypt"
	jwtauth "animal-registry/internal/adapters/auth/jwt"
	mem "animal-registry/internal/adapters/storage/memory"
	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/domain/users"
	"animal-registry/internal/ports/auth"
)

func newService() (*users.Service, *jwtauth.Manager) {
	tokens := jwtauth.NewManager(jwtauth.Config{Secret: "test-secret"})
	return users.NewService(mem.NewUserRepo(mem.NewDB()), bcrypt.NewHasher(4), tokens), tokens
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, users.RegisterInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 || u.HashedPassword == "password1" {
		t.Fatalf("unexpected user: %+v", u)
	}

	_, err = svc.Register(ctx, users.RegisterInput{Username: "alice", Password: "password2"})
	if kind, ok := apperr.IsConflict(err); !ok || kind != apperr.ConflictUsernameTaken {
		t.Fatalf("expected username-taken conflict, got %v", err)
	}
}

func TestService_Login_IssuesVerifiableToken(t *testing.T) {
	svc, tokens := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, users.RegisterInput{Username: "alice", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, err := svc.Login(ctx, "alice", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", tok.TokenType)
	}

	claims, err := tokens.Verify(ctx, tok.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	me, err := svc.Current(ctx, claims)
	if err != nil || me.Username != "alice" {
		t.Fatalf("expected alice, got %+v err=%v", me, err)
	}
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, users.RegisterInput{Username: "alice", Password: "password1"})

	for _, tc := range []struct{ user, pass string }{{"alice", "wrong-pass"}, {"bob", "password1"}} {
		_, err := svc.Login(ctx, tc.user, tc.pass)
		if !errors.Is(err, users.ErrInvalidCredentials) || !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("%s: expected invalid credentials, got %v", tc.user, err)
		}
	}
}

func TestService_Current_UnknownUser(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Current(context.Background(), auth.Claims{UserID: "9", Username: "ghost"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = svc.Current(context.Background(), auth.Claims{})
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for empty claims, got %v", err)
	}
}
