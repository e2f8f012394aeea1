package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type ledgerTransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id string) (*models.Transaction, error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, int64, error)
}

type ledgerCategoryStore interface {
	Get(ctx context.Context, id string) (*models.Category, error)
}

type auditAppender interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
}

type ledgerService struct {
	txs   ledgerTransactionStore
	cats  ledgerCategoryStore
	audit auditAppender
}

func NewLedgerService(txs ledgerTransactionStore, cats ledgerCategoryStore, audit auditAppender) *ledgerService {
	return &ledgerService{txs: txs, cats: cats, audit: audit}
}

// Create validates the request, resolves the category (which must
// exist, on every path), persists the record together with its summary
// adjustments and writes a best-effort audit entry after the commit.
func (s *ledgerService) Create(ctx context.Context, createdBy string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	if !models.ValidType(req.Type) {
		return nil, errs.NewValidationError("type must be income or expense")
	}
	if req.AmountCents < 0 {
		return nil, errs.NewValidationError("amountCents must not be negative")
	}
	if req.CategoryID == "" {
		return nil, errs.NewValidationError("categoryId is required")
	}
	if createdBy == "" {
		return nil, errs.NewValidationError("createdBy is required")
	}

	if _, err := s.cats.Get(ctx, req.CategoryID); err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return nil, errs.NewValidationError("category does not exist")
		}
		return nil, err
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	t := &models.Transaction{
		TransactionID: uuid.New().String(),
		Type:          req.Type,
		AmountCents:   req.AmountCents,
		CategoryID:    req.CategoryID,
		Timestamp:     ts,
		Note:          req.Note,
		ClickupID:     req.ClickupID,
		CompanyName:   req.CompanyName,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}

	if err := s.txs.Create(ctx, t); err != nil {
		return nil, err
	}

	s.auditLog(ctx, &models.AuditEntry{
		Action:      models.AuditTransactionCreated,
		EntityType:  "transaction",
		EntityID:    t.TransactionID,
		AmountCents: t.AmountCents,
		CategoryID:  t.CategoryID,
		Actor:       createdBy,
	})

	return t, nil
}

// Delete removes the record, reversing its summary contribution in the
// same atomic unit. The audit entry is only written when an actor is
// known.
func (s *ledgerService) Delete(ctx context.Context, id, actor string) error {
	deleted, err := s.txs.Delete(ctx, id)
	if err != nil {
		return err
	}

	if actor != "" {
		s.auditLog(ctx, &models.AuditEntry{
			Action:      models.AuditTransactionDeleted,
			EntityType:  "transaction",
			EntityID:    deleted.TransactionID,
			AmountCents: deleted.AmountCents,
			CategoryID:  deleted.CategoryID,
			Actor:       actor,
		})
	}
	return nil
}

func (s *ledgerService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return s.txs.Get(ctx, id)
}

func (s *ledgerService) List(ctx context.Context, f dto.TransactionFilter) (dto.TransactionListResult, error) {
	if f.Type != "" && !models.ValidType(f.Type) {
		return dto.TransactionListResult{}, errs.NewValidationError("type must be income or expense")
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	txs, total, err := s.txs.List(ctx, f)
	if err != nil {
		return dto.TransactionListResult{}, err
	}
	return dto.TransactionListResult{Transactions: txs, TotalCount: total}, nil
}

// auditLog is best-effort observability; a failed append never fails
// the committed operation.
func (s *ledgerService) auditLog(ctx context.Context, entry *models.AuditEntry) {
	entry.EntryID = uuid.New().String()
	entry.CreatedAt = time.Now()
	if err := s.audit.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn("audit append failed", "action", entry.Action, "error", err)
	}
}
