package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
)

const maxWebhookBody = 1 << 20 // 1 MiB

type WebhookService interface {
	Ingest(ctx context.Context, raw []byte) (*models.Transaction, error)
}

type webhookHandlers struct {
	ResponseHandler response.ResponseHandler
	WebhookSvc      WebhookService
}

func NewWebhookHandlers(deps *Deps) *webhookHandlers {
	return &webhookHandlers{
		ResponseHandler: deps.ResponseHandler,
		WebhookSvc:      deps.WebhookSvc,
	}
}

func (h *webhookHandlers) WebhookRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/transactions", h.IngestTransaction)
	return r
}

// IngestTransaction hands the raw body to the service so rejected
// payloads can be persisted exactly as received.
func (h *webhookHandlers) IngestTransaction(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("failed to read request body"))
		return
	}

	t, err := h.WebhookSvc.Ingest(r.Context(), raw)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.WebhookTransactionResponse{
		TransactionID: t.TransactionID,
	})
}
