package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-registry/internal/ports/auth"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "1", Username: "alice"}, nil
}

func claimsProbe(got *auth.Claims, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = GetClaims(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthContext_VerifierMode(t *testing.T) {
	cases := []struct {
		header string
		wantOK bool
	}{
		{"Bearer good", true},
		{"bearer   good", true},
		{"Bearer bad", false},
		{"Basic good", false},
		{"", false},
	}
	for _, tc := range cases {
		var (
			got auth.Claims
			ok  bool
		)
		req := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		AuthContext(stubVerifier{})(claimsProbe(&got, &ok)).ServeHTTP(httptest.NewRecorder(), req)

		if ok != tc.wantOK {
			t.Fatalf("%q: expected claims=%v, got %v", tc.header, tc.wantOK, ok)
		}
		if ok && got.Username != "alice" {
			t.Fatalf("%q: unexpected claims %+v", tc.header, got)
		}
	}
}

func TestAuthContext_DevModeHeader(t *testing.T) {
	var (
		got auth.Claims
		ok  bool
	)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Debug-Username", "dev")
	AuthContext(nil)(claimsProbe(&got, &ok)).ServeHTTP(httptest.NewRecorder(), req)

	if !ok || got.Username != "dev" {
		t.Fatalf("expected dev claims, got %+v ok=%v", got, ok)
	}
}

func TestRequireClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	RequireClaims(next).ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusUnauthorized || rec.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected 401 with challenge, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{Username: "alice"}))
	RequireClaims(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with claims, got %d", rec.Code)
	}
}
