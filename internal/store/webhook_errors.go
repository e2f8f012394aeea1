package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

// webhookErrorStore keeps rejected ingestion payloads for later
// inspection.
type webhookErrorStore struct {
	client *firestore.Client
}

func NewWebhookErrorStore(client *firestore.Client) *webhookErrorStore {
	return &webhookErrorStore{client: client}
}

func (s *webhookErrorStore) Record(ctx context.Context, f *models.WebhookFailure) error {
	_, err := s.client.Collection("webhook_errors").Doc(f.FailureID).Create(ctx, f)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to record webhook failure", err)
	}
	return nil
}
