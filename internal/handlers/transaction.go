package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/middleware"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
)

type LedgerService interface {
	Create(ctx context.Context, createdBy string, req dto.CreateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, id, actor string) error
	Get(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, f dto.TransactionFilter) (dto.TransactionListResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	LedgerSvc       LedgerService
	Clock           *period.Clock
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		LedgerSvc:       deps.LedgerSvc,
		Clock:           deps.Clock,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateTransaction)
	r.Get("/", h.ListTransactions)
	r.Get("/{transactionId}", h.GetTransaction)
	// staff cannot delete; deletion reverses summary counters
	r.With(middleware.RequireAdmin).Delete("/{transactionId}", h.DeleteTransaction)
	return r
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON body"))
		return
	}
	uid := middleware.UID(r.Context())
	t, err := h.LedgerSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, t)
}

func (h *transactionHandlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	t, err := h.LedgerSvc.Get(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, t)
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.LedgerSvc.Delete(r.Context(), id, uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseTransactionFilter(r, h.Clock)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	result, err := h.LedgerSvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

// parseTransactionFilter reads the shared list/export query params.
// from/to accept RFC3339 instants or bare civil dates.
func parseTransactionFilter(r *http.Request, clock *period.Clock) (dto.TransactionFilter, error) {
	q := r.URL.Query()
	f := dto.TransactionFilter{
		Type:       q.Get("type"),
		CategoryID: q.Get("categoryId"),
		CreatedBy:  q.Get("createdBy"),
	}

	if v := q.Get("from"); v != "" {
		t, err := parseInstant(v, clock, false)
		if err != nil {
			return f, errs.NewValidationError("from is not RFC3339 or YYYY-MM-DD")
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseInstant(v, clock, true)
		if err != nil {
			return f, errs.NewValidationError("to is not RFC3339 or YYYY-MM-DD")
		}
		f.To = &t
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errs.NewValidationError("offset must be a non-negative integer")
		}
		f.Offset = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errs.NewValidationError("limit must be a non-negative integer")
		}
		f.Limit = n
	}
	return f, nil
}

// parseInstant treats a bare date as the start of that civil day, or
// its inclusive end when it bounds the upper side of a range.
func parseInstant(v string, clock *period.Clock, upperBound bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := clock.ParseDateKey(v)
	if err != nil {
		return time.Time{}, err
	}
	if upperBound {
		_, end := clock.DayRange(t)
		return end, nil
	}
	return t, nil
}
