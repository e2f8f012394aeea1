package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/pkg/helpers"
)

type stubCategoryStore struct {
	byID   map[string]*models.Category
	byName map[string]*models.Category

	created []*models.Category
	deleted []string
}

func newStubCategoryStore() *stubCategoryStore {
	return &stubCategoryStore{
		byID:   map[string]*models.Category{},
		byName: map[string]*models.Category{},
	}
}

func (s *stubCategoryStore) add(c *models.Category) {
	s.byID[c.CategoryID] = c
	s.byName[c.Name] = c
}

func (s *stubCategoryStore) Create(_ context.Context, c *models.Category) error {
	s.add(c)
	s.created = append(s.created, c)
	return nil
}

func (s *stubCategoryStore) Get(_ context.Context, id string) (*models.Category, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, errs.NewNotFoundError("category not found")
}

func (s *stubCategoryStore) GetByName(_ context.Context, name string) (*models.Category, error) {
	if c, ok := s.byName[name]; ok {
		return c, nil
	}
	return nil, errs.NewNotFoundError("category not found")
}

func (s *stubCategoryStore) List(_ context.Context, f dto.CategoryFilter) ([]models.Category, error) {
	var out []models.Category
	for _, c := range s.byID {
		if f.ActiveOnly && !c.Active {
			continue
		}
		if f.Type != "" && !c.MatchesType(f.Type) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCategoryStore) SetActive(_ context.Context, id string, active bool) error {
	c, ok := s.byID[id]
	if !ok {
		return errs.NewNotFoundError("category not found")
	}
	c.Active = active
	return nil
}

func (s *stubCategoryStore) Delete(_ context.Context, id string) error {
	delete(s.byName, s.byID[id].Name)
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubUsageCounter struct {
	counts map[string]int64
}

func (s *stubUsageCounter) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	return s.counts[categoryID], nil
}

func newCategoryFixture() (*stubCategoryStore, *stubUsageCounter, *stubAudit, *categoryService) {
	store := newStubCategoryStore()
	usage := &stubUsageCounter{counts: map[string]int64{}}
	audit := &stubAudit{}
	return store, usage, audit, NewCategoryService(store, usage, audit)
}

func TestCategoryCreate(t *testing.T) {
	store, _, audit, svc := newCategoryFixture()

	c, err := svc.Create(helpers.TestCtx(), "admin-1", dto.CreateCategoryRequest{Name: "Marketing", Type: models.CategoryTypeExpense})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.CategoryID == "" {
		t.Fatal("category id was not assigned")
	}
	if !c.Active {
		t.Fatal("new category must start active")
	}
	if len(store.created) != 1 {
		t.Fatalf("store creates = %d, want 1", len(store.created))
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditCategoryCreated {
		t.Fatalf("unexpected audit trail: %+v", audit.entries)
	}
}

func TestCategoryCreateValidation(t *testing.T) {
	_, _, _, svc := newCategoryFixture()

	cases := []dto.CreateCategoryRequest{
		{Name: ""},
		{Name: "Misc", Type: "transfer"},
	}
	for _, req := range cases {
		_, err := svc.Create(helpers.TestCtx(), "admin-1", req)
		var verr *errs.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%+v: expected ValidationError, got %v", req, err)
		}
	}
}

func TestCategoryDeleteInUse(t *testing.T) {
	store, usage, _, svc := newCategoryFixture()
	store.add(&models.Category{CategoryID: "c1", Name: "Sales", Active: true})
	usage.counts["c1"] = 3

	err := svc.Delete(helpers.TestCtx(), "admin-1", "c1")
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("in-use category was deleted: %v", store.deleted)
	}
}

func TestCategoryDeleteUnused(t *testing.T) {
	store, _, audit, svc := newCategoryFixture()
	store.add(&models.Category{CategoryID: "c1", Name: "Sales", Active: true})

	if err := svc.Delete(helpers.TestCtx(), "admin-1", "c1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "c1" {
		t.Fatalf("unexpected deletes: %v", store.deleted)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditCategoryDeleted {
		t.Fatalf("unexpected audit trail: %+v", audit.entries)
	}
}

func TestCategoryToggleActive(t *testing.T) {
	store, _, _, svc := newCategoryFixture()
	store.add(&models.Category{CategoryID: "c1", Name: "Sales", Active: true})

	c, err := svc.ToggleActive(helpers.TestCtx(), "admin-1", "c1")
	if err != nil {
		t.Fatalf("ToggleActive returned error: %v", err)
	}
	if c.Active {
		t.Fatal("toggle did not deactivate")
	}
	if store.byID["c1"].Active {
		t.Fatal("store was not updated")
	}
}

func TestCategoryListTypeFilter(t *testing.T) {
	store, _, _, svc := newCategoryFixture()
	store.add(&models.Category{CategoryID: "c1", Name: "Sales", Type: models.CategoryTypeIncome, Active: true})
	store.add(&models.Category{CategoryID: "c2", Name: "Rent", Type: models.CategoryTypeExpense, Active: true})
	store.add(&models.Category{CategoryID: "c3", Name: "Other", Type: models.CategoryTypeBoth, Active: true})
	store.add(&models.Category{CategoryID: "c4", Name: "Legacy", Active: true}) // untyped

	got, err := svc.List(helpers.TestCtx(), dto.CategoryFilter{Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("income listing = %d categories, want 3 (income, both, untyped)", len(got))
	}
	for _, c := range got {
		if c.CategoryID == "c2" {
			t.Fatal("expense category leaked into income listing")
		}
	}

	_, err = svc.List(helpers.TestCtx(), dto.CategoryFilter{Type: "transfer"})
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for bad type filter, got %v", err)
	}
}

func TestCategoryGetOrCreatePayment(t *testing.T) {
	store, _, _, svc := newCategoryFixture()

	first, err := svc.GetOrCreatePayment(helpers.TestCtx(), models.CategoryCash)
	if err != nil {
		t.Fatalf("GetOrCreatePayment returned error: %v", err)
	}
	second, err := svc.GetOrCreatePayment(helpers.TestCtx(), models.CategoryCash)
	if err != nil {
		t.Fatalf("second GetOrCreatePayment returned error: %v", err)
	}
	if first.CategoryID != second.CategoryID {
		t.Fatalf("payment category not idempotent: %q vs %q", first.CategoryID, second.CategoryID)
	}
	if len(store.created) != 1 {
		t.Fatalf("store creates = %d, want 1", len(store.created))
	}

	if _, err := svc.GetOrCreatePayment(helpers.TestCtx(), "Sales"); err == nil {
		t.Fatal("non-payment name must be rejected")
	}
}

func TestCategorySeed(t *testing.T) {
	store, _, _, svc := newCategoryFixture()
	store.add(&models.Category{CategoryID: "c1", Name: models.CategoryCash, Type: models.CategoryTypeBoth, Active: true})

	created, err := svc.Seed(helpers.TestCtx())
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if want := len(seedCategories) - 1; created != want {
		t.Fatalf("created = %d, want %d", created, want)
	}

	// second run is a no-op
	created, err = svc.Seed(helpers.TestCtx())
	if err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}
	if created != 0 {
		t.Fatalf("second seed created %d categories", created)
	}
}
