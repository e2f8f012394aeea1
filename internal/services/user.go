package services

import (
	"context"
	"time"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

// EnsureUser returns the stored user for a verified identity, creating
// the document with the default staff role on first sight. Role
// elevation never happens here; admins are flagged out of band.
func (s *userService) EnsureUser(ctx context.Context, uid, email string) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.Store.GetUser(ctx, uid)
	if err == nil {
		return user, nil
	}
	if _, ok := err.(*errs.NotFoundError); !ok {
		return nil, err
	}

	user = &models.User{
		UID:       uid,
		Email:     email,
		Role:      models.RoleStaff,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return nil, err
	}

	log.Info("user provisioned", "role", user.Role)
	return user, nil
}

func (s *userService) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}
