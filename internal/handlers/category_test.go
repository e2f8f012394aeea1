package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

type stubCategoryService struct {
	listCats  []models.Category
	listErr   error
	createCat *models.Category
	createErr error
	toggleCat *models.Category
	toggleErr error
	deleteErr error
	seeded    int
	seedErr   error

	lastListFilter dto.CategoryFilter
	lastCreateReq  dto.CreateCategoryRequest
	lastActor      string
	lastID         string
}

func (s *stubCategoryService) List(_ context.Context, f dto.CategoryFilter) ([]models.Category, error) {
	s.lastListFilter = f
	return s.listCats, s.listErr
}

func (s *stubCategoryService) Create(_ context.Context, actor string, req dto.CreateCategoryRequest) (*models.Category, error) {
	s.lastActor = actor
	s.lastCreateReq = req
	return s.createCat, s.createErr
}

func (s *stubCategoryService) ToggleActive(_ context.Context, actor, id string) (*models.Category, error) {
	s.lastActor = actor
	s.lastID = id
	return s.toggleCat, s.toggleErr
}

func (s *stubCategoryService) Delete(_ context.Context, actor, id string) error {
	s.lastActor = actor
	s.lastID = id
	return s.deleteErr
}

func (s *stubCategoryService) Seed(_ context.Context) (int, error) {
	return s.seeded, s.seedErr
}

func TestListCategories_OK(t *testing.T) {
	svc := &stubCategoryService{listCats: []models.Category{{CategoryID: "c1", Name: "Sales"}}}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/categories?active=true&type=income", nil)
	req = withIdentity(req, "uid1", models.RoleStaff)
	rr := httptest.NewRecorder()
	h.ListCategories(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200")
	}
	if !svc.lastListFilter.ActiveOnly || svc.lastListFilter.Type != "income" {
		t.Fatalf("unexpected filter: %+v", svc.lastListFilter)
	}
}

func TestCreateCategory_OK(t *testing.T) {
	svc := &stubCategoryService{createCat: &models.Category{CategoryID: "c1", Name: "Marketing"}}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	body := `{"name":"Marketing","type":"expense"}`
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
	req = withIdentity(req, "admin1", models.RoleAdmin)
	rr := httptest.NewRecorder()
	h.CreateCategory(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected WriteSuccess 201")
	}
	if svc.lastActor != "admin1" {
		t.Errorf("actor = %q, want admin1", svc.lastActor)
	}
	if svc.lastCreateReq.Name != "Marketing" {
		t.Errorf("name = %q", svc.lastCreateReq.Name)
	}
}

func TestDeleteCategory_Conflict(t *testing.T) {
	svc := &stubCategoryService{deleteErr: errs.NewConflictError("category is in use by existing transactions")}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/categories/c1", nil)
	req = withIdentity(req, "admin1", models.RoleAdmin)
	req = withChiParam(req, "categoryId", "c1")
	rr := httptest.NewRecorder()
	h.DeleteCategory(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on conflict")
	}
}

func TestCategoryMutations_RequireAdmin(t *testing.T) {
	svc := &stubCategoryService{}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})
	router := h.CategoryRoutes()

	cases := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/"},
		{http.MethodPost, "/seed"},
		{http.MethodPatch, "/c1/toggle"},
		{http.MethodDelete, "/c1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(`{}`))
		req = withIdentity(req, "uid1", models.RoleStaff)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s %s as staff got %d, want 403", tc.method, tc.target, rr.Code)
		}
	}

	// listing stays open to staff
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = withIdentity(req, "uid1", models.RoleStaff)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code == http.StatusForbidden {
		t.Fatal("staff listing was forbidden")
	}
}
