package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

func TestRequireAdmin(t *testing.T) {
	next, called := okHandler()
	h := RequireAdmin(next)

	req := httptest.NewRequest(http.MethodDelete, "/transactions/t1", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{UID: "u1", Role: models.RoleAdmin}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !*called {
		t.Fatalf("admin was rejected: %d", rr.Code)
	}
}

func TestRequireAdminRejectsStaff(t *testing.T) {
	next, called := okHandler()
	h := RequireAdmin(next)

	req := httptest.NewRequest(http.MethodDelete, "/transactions/t1", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{UID: "u1", Role: models.RoleStaff}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("staff got %d, want 403", rr.Code)
	}
	if *called {
		t.Fatal("handler ran for staff caller")
	}
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	next, _ := okHandler()
	h := RequireAdmin(next)

	req := httptest.NewRequest(http.MethodDelete, "/transactions/t1", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("anonymous got %d, want 403", rr.Code)
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithIdentity(req.Context(), Identity{UID: "u1", Email: "u1@example.com", Role: models.RoleStaff})

	id := From(ctx)
	if id.UID != "u1" || id.Email != "u1@example.com" || id.Role != models.RoleStaff {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if UID(ctx) != "u1" {
		t.Fatalf("UID = %q", UID(ctx))
	}

	if From(req.Context()) != (Identity{}) {
		t.Fatal("missing identity must read as zero value")
	}
}
