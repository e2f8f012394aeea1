package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

type webhookLedger interface {
	Create(ctx context.Context, createdBy string, req dto.CreateTransactionRequest) (*models.Transaction, error)
}

type webhookCategoryResolver interface {
	Get(ctx context.Context, id string) (*models.Category, error)
	GetOrCreatePayment(ctx context.Context, name string) (*models.Category, error)
}

type webhookFailureStore interface {
	Record(ctx context.Context, f *models.WebhookFailure) error
}

type webhookService struct {
	ledger   webhookLedger
	cats     webhookCategoryResolver
	failures webhookFailureStore
	clock    *period.Clock
}

func NewWebhookService(ledger webhookLedger, cats webhookCategoryResolver, failures webhookFailureStore, clock *period.Clock) *webhookService {
	return &webhookService{ledger: ledger, cats: cats, failures: failures, clock: clock}
}

// Ingest validates an external transaction payload and performs the
// full ledger-create side effects. Every rejection is persisted with
// the raw payload so integration issues can be inspected after the
// fact.
func (s *webhookService) Ingest(ctx context.Context, raw []byte) (*models.Transaction, error) {
	var req dto.WebhookTransactionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, s.reject(ctx, raw, "payload is not valid JSON")
	}

	if req.Date == "" || req.Type == "" || req.CategoryID == "" || req.CreatedBy == "" {
		return nil, s.reject(ctx, raw, "date, type, categoryId and createdBy are required")
	}
	if !models.ValidType(req.Type) {
		return nil, s.reject(ctx, raw, "type must be income or expense")
	}

	ts, err := s.parseDate(req.Date)
	if err != nil {
		return nil, s.reject(ctx, raw, "date is not RFC3339 or YYYY-MM-DD")
	}

	amountCents := int64(math.Round(req.Amount * 100))
	if amountCents <= 0 {
		return nil, s.reject(ctx, raw, "amount must round to a positive number of cents")
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return nil, s.reject(ctx, raw, "category does not exist")
		}
		return nil, err
	}

	return s.ledger.Create(ctx, req.CreatedBy, dto.CreateTransactionRequest{
		Type:        req.Type,
		AmountCents: amountCents,
		CategoryID:  categoryID,
		Timestamp:   ts,
		Note:        req.Note,
		ClickupID:   req.ClickupID,
		CompanyName: req.CompanyName,
	})
}

func (s *webhookService) parseDate(date string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		return ts, nil
	}
	return s.clock.ParseDateKey(date)
}

// resolveCategory maps the sentinel ids "cash" and "online" to the
// reserved payment categories, creating them on first use; anything
// else must be an existing category id.
func (s *webhookService) resolveCategory(ctx context.Context, id string) (string, error) {
	switch id {
	case dto.WebhookCategoryCash:
		c, err := s.cats.GetOrCreatePayment(ctx, models.CategoryCash)
		if err != nil {
			return "", err
		}
		return c.CategoryID, nil
	case dto.WebhookCategoryOnline:
		c, err := s.cats.GetOrCreatePayment(ctx, models.CategoryOnlinePayment)
		if err != nil {
			return "", err
		}
		return c.CategoryID, nil
	}

	c, err := s.cats.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return c.CategoryID, nil
}

// reject records the failure best-effort and returns the validation
// error for the caller.
func (s *webhookService) reject(ctx context.Context, raw []byte, reason string) error {
	failure := &models.WebhookFailure{
		FailureID:  uuid.New().String(),
		Reason:     reason,
		RawPayload: string(raw),
		CreatedAt:  time.Now(),
	}
	if err := s.failures.Record(ctx, failure); err != nil {
		logger.FromContext(ctx).Warn("failed to record webhook failure", "error", err)
	}
	logger.FromContext(ctx).Warn("webhook payload rejected", "reason", reason)
	return errs.NewValidationError(reason)
}
