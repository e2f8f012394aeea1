package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/middleware"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
)

type CategoryService interface {
	List(ctx context.Context, f dto.CategoryFilter) ([]models.Category, error)
	Create(ctx context.Context, actor string, req dto.CreateCategoryRequest) (*models.Category, error)
	ToggleActive(ctx context.Context, actor, id string) (*models.Category, error)
	Delete(ctx context.Context, actor, id string) error
	Seed(ctx context.Context) (int, error)
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     CategoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCategories)
	r.With(middleware.RequireAdmin).Post("/", h.CreateCategory)
	r.With(middleware.RequireAdmin).Post("/seed", h.SeedCategories)
	r.With(middleware.RequireAdmin).Patch("/{categoryId}/toggle", h.ToggleCategory)
	r.With(middleware.RequireAdmin).Delete("/{categoryId}", h.DeleteCategory)
	return r
}

func (h *categoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	f := dto.CategoryFilter{
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Type:       r.URL.Query().Get("type"),
	}
	cats, err := h.CategorySvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cats)
}

func (h *categoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON body"))
		return
	}
	c, err := h.CategorySvc.Create(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, c)
}

func (h *categoryHandlers) SeedCategories(w http.ResponseWriter, r *http.Request) {
	created, err := h.CategorySvc.Seed(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]int{"created": created})
}

func (h *categoryHandlers) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	c, err := h.CategorySvc.ToggleActive(r.Context(), middleware.UID(r.Context()), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, c)
}

func (h *categoryHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	if err := h.CategorySvc.Delete(r.Context(), middleware.UID(r.Context()), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
