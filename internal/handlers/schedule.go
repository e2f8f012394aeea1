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

type ScheduleService interface {
	List(ctx context.Context) ([]models.ScheduledPayment, error)
	Create(ctx context.Context, createdBy string, req dto.CreateScheduleRequest) (*models.ScheduledPayment, error)
	Update(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.ScheduledPayment, error)
	Delete(ctx context.Context, id string) error
	RunDue(ctx context.Context, actor string) (dto.RunDueResult, error)
}

type scheduleHandlers struct {
	ResponseHandler response.ResponseHandler
	ScheduleSvc     ScheduleService
}

func NewScheduleHandlers(deps *Deps) *scheduleHandlers {
	return &scheduleHandlers{
		ResponseHandler: deps.ResponseHandler,
		ScheduleSvc:     deps.ScheduleSvc,
	}
}

// ScheduleRoutes is mounted behind RequireAdmin; the sweep creates
// ledger transactions and staff cannot do that indirectly.
func (h *scheduleHandlers) ScheduleRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListSchedules)
	r.Post("/", h.CreateSchedule)
	r.Post("/run", h.RunDue) // must be before /{scheduleId}
	r.Put("/{scheduleId}", h.UpdateSchedule)
	r.Delete("/{scheduleId}", h.DeleteSchedule)
	return r
}

func (h *scheduleHandlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.ScheduleSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, schedules)
}

func (h *scheduleHandlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON body"))
		return
	}
	sp, err := h.ScheduleSvc.Create(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, sp)
}

func (h *scheduleHandlers) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scheduleId")
	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON body"))
		return
	}
	sp, err := h.ScheduleSvc.Update(r.Context(), id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, sp)
}

func (h *scheduleHandlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "scheduleId")
	if err := h.ScheduleSvc.Delete(r.Context(), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *scheduleHandlers) RunDue(w http.ResponseWriter, r *http.Request) {
	result, err := h.ScheduleSvc.RunDue(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
