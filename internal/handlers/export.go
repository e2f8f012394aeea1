package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/middleware"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

type ExportService interface {
	WriteTransactionsCSV(ctx context.Context, f dto.TransactionFilter, w io.Writer) error
	MonthReport(ctx context.Context, generatedBy string) (dto.MonthReport, error)
}

type exportHandlers struct {
	ResponseHandler response.ResponseHandler
	ExportSvc       ExportService
	Clock           *period.Clock
}

func NewExportHandlers(deps *Deps) *exportHandlers {
	return &exportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExportSvc:       deps.ExportSvc,
		Clock:           deps.Clock,
	}
}

func (h *exportHandlers) ExportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/transactions.csv", h.TransactionsCSV)
	r.Get("/report", h.MonthReport)
	return r
}

// TransactionsCSV buffers the export so an error mid-scan still
// produces a clean JSON error instead of a truncated file.
func (h *exportHandlers) TransactionsCSV(w http.ResponseWriter, r *http.Request) {
	f, err := parseTransactionFilter(r, h.Clock)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.ExportSvc.WriteTransactionsCSV(r.Context(), f, &buf); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Error("failed to write csv response", "error", err)
	}
}

func (h *exportHandlers) MonthReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.ExportSvc.MonthReport(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, report)
}
