package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
)

type DashboardService interface {
	GetDashboardData(ctx context.Context, chartFrom, chartTo *time.Time) (dto.DashboardData, error)
	PaymentTotalsFor(ctx context.Context, at time.Time) (dto.PaymentTotals, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
	Clock           *period.Clock
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
		Clock:           deps.Clock,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	return r
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := parseInstant(v, h.Clock, false)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("from is not RFC3339 or YYYY-MM-DD"))
			return
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := parseInstant(v, h.Clock, true)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("to is not RFC3339 or YYYY-MM-DD"))
			return
		}
		to = &t
	}

	data, err := h.DashboardSvc.GetDashboardData(r.Context(), from, to)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
}
