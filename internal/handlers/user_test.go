package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

type stubUserService struct {
	user *models.User
	err  error

	lastUID string
}

func (s *stubUserService) EnsureUser(_ context.Context, uid, _ string) (*models.User, error) {
	s.lastUID = uid
	return s.user, s.err
}

func (s *stubUserService) Get(_ context.Context, uid string) (*models.User, error) {
	s.lastUID = uid
	return s.user, s.err
}

func TestMe_OK(t *testing.T) {
	svc := &stubUserService{user: &models.User{UID: "uid1", Email: "maria@example.com", Role: models.RoleStaff}}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = withIdentity(req, "uid1", models.RoleStaff)
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200")
	}
	if svc.lastUID != "uid1" {
		t.Errorf("uid = %q, want uid1", svc.lastUID)
	}
	user, ok := resp.writeSuccessData.(*models.User)
	if !ok || user.Email != "maria@example.com" {
		t.Fatalf("unexpected payload: %+v", resp.writeSuccessData)
	}
}

func TestMe_NotFound(t *testing.T) {
	svc := &stubUserService{err: errs.NewNotFoundError("user not found")}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = withIdentity(req, "ghost", models.RoleStaff)
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
}
