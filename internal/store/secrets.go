package store

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
)

// secretStore reads configuration secrets from Secret Manager. The
// only consumer today is the webhook shared secret.
type secretStore struct {
	client *secretmanager.Client
}

func NewSecretStore(client *secretmanager.Client) *secretStore {
	return &secretStore{client: client}
}

// Read returns the latest version of the named secret. name is the
// full resource path, e.g. "projects/p/secrets/webhook-secret".
func (s *secretStore) Read(ctx context.Context, name string) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("%s/versions/latest", name),
	})
	if err != nil {
		return "", errs.NewExternalServiceError("secretmanager", "failed to access secret", false, err)
	}
	return string(res.Payload.Data), nil
}
