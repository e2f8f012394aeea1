package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

// auditStore is append-only; nothing in the application reads the
// trail back.
type auditStore struct {
	client *firestore.Client
}

func NewAuditStore(client *firestore.Client) *auditStore {
	return &auditStore{client: client}
}

func (s *auditStore) Append(ctx context.Context, entry *models.AuditEntry) error {
	_, err := s.client.Collection("audit_logs").Doc(entry.EntryID).Create(ctx, entry)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to append audit entry", err)
	}
	return nil
}
