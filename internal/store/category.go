package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection() *firestore.CollectionRef {
	return s.client.Collection("categories")
}

func (s *categoryStore) Create(ctx context.Context, c *models.Category) error {
	_, err := s.collection().Doc(c.CategoryID).Create(ctx, c)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get category", err)
	}
	var c models.Category
	if err := snap.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

// GetByName does an exact-name lookup. Names have no uniqueness
// constraint; the first match wins, which is what the seeding and
// sentinel-resolution paths rely on.
func (s *categoryStore) GetByName(ctx context.Context, name string) (*models.Category, error) {
	docs, err := s.collection().Where("name", "==", name).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to look up category by name", err)
	}
	if len(docs) == 0 {
		return nil, errs.NewNotFoundError("category not found")
	}
	var c models.Category
	if err := docs[0].DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

// List returns categories ordered by name. The type filter runs in
// memory because "matches type, is both, or is untyped" is not
// expressible as a single Firestore predicate.
func (s *categoryStore) List(ctx context.Context, f dto.CategoryFilter) ([]models.Category, error) {
	q := s.collection().Query
	if f.ActiveOnly {
		q = q.Where("active", "==", true)
	}

	docs, err := q.OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}

	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		if f.Type != "" && !c.MatchesType(f.Type) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *categoryStore) SetActive(ctx context.Context, id string, active bool) error {
	_, err := s.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "active", Value: active},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("category not found")
		}
		return errs.NewDatabaseError("update", "failed to toggle category", err)
	}
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}
