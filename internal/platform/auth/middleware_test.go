package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubAuthenticator struct {
	identity Identity
	err      error
}

func (s stubAuthenticator) Authenticate(ctx context.Context, r *http.Request) (Identity, error) {
	return s.identity, s.err
}

func TestMiddlewareRejectsUnauthenticated(t *testing.T) {
	handler := Middleware{
		Authenticator: stubAuthenticator{err: ErrUnauthenticated},
	}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddlewareEnforcesMethodRoles(t *testing.T) {
	handler := Middleware{
		Authenticator: stubAuthenticator{identity: Identity{Subject: "u1", Roles: []string{RoleViewer.String()}}},
		Authorize:     MethodRoleAuthorizer(),
	}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("viewer read should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer write should be forbidden, got %d", rec.Code)
	}
}

func TestMiddlewareSkipsHealthEndpoints(t *testing.T) {
	handler := Middleware{
		Authenticator: stubAuthenticator{err: ErrUnauthenticated},
		SkipPrefixes:  []string{"/healthz"},
	}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health endpoint should skip auth, got %d", rec.Code)
	}
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	var got Identity
	handler := Middleware{
		Authenticator: stubAuthenticator{identity: Identity{Subject: "u1", Roles: []string{RoleAdmin.String()}}},
	}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	if got.Subject != "u1" {
		t.Fatalf("expected identity in context, got %+v", got)
	}
}
