package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"

	"github.com/kpapadakis/bookkeeper-backend/internal/config"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

// Bootstrap holds the once-per-process client handles. Everything is
// constructed here and injected; no package keeps its own global.
type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Secrets   *secretmanager.Client
	Clock     *period.Clock
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Clock, err = period.New(cfg.Timezone)
	if err != nil {
		return bs, err
	}
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.Secrets, err = secretmanager.NewClient(applicationCtx)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
	if bs.Secrets != nil {
		bs.Secrets.Close()
	}
}
