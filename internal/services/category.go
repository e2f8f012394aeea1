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

type categoryCStore interface {
	Create(ctx context.Context, c *models.Category) error
	Get(ctx context.Context, id string) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context, f dto.CategoryFilter) ([]models.Category, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type categoryUsageCounter interface {
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type categoryService struct {
	store categoryCStore
	usage categoryUsageCounter
	audit auditAppender
}

func NewCategoryService(store categoryCStore, usage categoryUsageCounter, audit auditAppender) *categoryService {
	return &categoryService{store: store, usage: usage, audit: audit}
}

// seedCategories is the fixed starter set. Seeding skips any exact
// name that already exists; renamed duplicates are not detected.
var seedCategories = []models.Category{
	{Name: models.CategoryCash, Type: models.CategoryTypeBoth},
	{Name: models.CategoryOnlinePayment, Type: models.CategoryTypeBoth},
	{Name: "Sales", Type: models.CategoryTypeIncome},
	{Name: "Services", Type: models.CategoryTypeIncome},
	{Name: "Rent", Type: models.CategoryTypeExpense},
	{Name: "Salaries", Type: models.CategoryTypeExpense},
	{Name: "Utilities", Type: models.CategoryTypeExpense},
	{Name: "Supplies", Type: models.CategoryTypeExpense},
	{Name: "Other", Type: models.CategoryTypeBoth},
}

func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.store.Get(ctx, id)
}

func (s *categoryService) List(ctx context.Context, f dto.CategoryFilter) ([]models.Category, error) {
	if f.Type != "" && !models.ValidType(f.Type) {
		return nil, errs.NewValidationError("type filter must be income or expense")
	}
	return s.store.List(ctx, f)
}

func (s *categoryService) Create(ctx context.Context, actor string, req dto.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("name is required")
	}
	if req.Type != "" && !validCategoryType(req.Type) {
		return nil, errs.NewValidationError("type must be income, expense or both")
	}

	now := time.Now()
	c := &models.Category{
		CategoryID: uuid.New().String(),
		Name:       req.Name,
		Type:       req.Type,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	s.auditLog(ctx, actor, models.AuditCategoryCreated, c.CategoryID)
	return c, nil
}

// ToggleActive flips the soft-delete flag.
func (s *categoryService) ToggleActive(ctx context.Context, actor, id string) (*models.Category, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := !c.Active
	if err := s.store.SetActive(ctx, id, next); err != nil {
		return nil, err
	}
	c.Active = next

	s.auditLog(ctx, actor, models.AuditCategoryToggled, id)
	return c, nil
}

// Delete removes a category outright, but only when no transaction
// references it.
func (s *categoryService) Delete(ctx context.Context, actor, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.usage.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.NewConflictError("category is in use by existing transactions")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.auditLog(ctx, actor, models.AuditCategoryDeleted, id)
	return nil
}

// GetOrCreatePayment resolves one of the reserved payment-method
// categories, creating it if absent. Idempotent by exact name.
func (s *categoryService) GetOrCreatePayment(ctx context.Context, name string) (*models.Category, error) {
	if name != models.CategoryCash && name != models.CategoryOnlinePayment {
		return nil, errs.NewValidationError("not a payment category name")
	}

	c, err := s.store.GetByName(ctx, name)
	if err == nil {
		return c, nil
	}
	if _, ok := err.(*errs.NotFoundError); !ok {
		return nil, err
	}

	now := time.Now()
	c = &models.Category{
		CategoryID: uuid.New().String(),
		Name:       name,
		Type:       models.CategoryTypeBoth,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Seed inserts the starter set, skipping names that already exist.
// Returns how many categories were created.
func (s *categoryService) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range seedCategories {
		_, err := s.store.GetByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if _, ok := err.(*errs.NotFoundError); !ok {
			return created, err
		}

		now := time.Now()
		c := seed
		c.CategoryID = uuid.New().String()
		c.Active = true
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := s.store.Create(ctx, &c); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *categoryService) auditLog(ctx context.Context, actor, action, categoryID string) {
	err := s.audit.Append(ctx, &models.AuditEntry{
		EntryID:    uuid.New().String(),
		Action:     action,
		EntityType: "category",
		EntityID:   categoryID,
		Actor:      actor,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("audit append failed", "action", action, "error", err)
	}
}

func validCategoryType(t string) bool {
	switch t {
	case models.CategoryTypeIncome, models.CategoryTypeExpense, models.CategoryTypeBoth:
		return true
	}
	return false
}
