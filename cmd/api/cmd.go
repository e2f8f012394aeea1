package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/kpapadakis/bookkeeper-backend/internal/bootstrap"
	"github.com/kpapadakis/bookkeeper-backend/internal/config"
	"github.com/kpapadakis/bookkeeper-backend/internal/handlers"
	"github.com/kpapadakis/bookkeeper-backend/internal/middleware"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
	"github.com/kpapadakis/bookkeeper-backend/internal/router"
	"github.com/kpapadakis/bookkeeper-backend/internal/services"
	"github.com/kpapadakis/bookkeeper-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore, bs.Clock)
	cstore := store.NewCategoryStore(bs.Firestore)
	sstore := store.NewSummaryStore(bs.Firestore)
	astore := store.NewAuditStore(bs.Firestore)
	pstore := store.NewScheduleStore(bs.Firestore)
	wstore := store.NewWebhookErrorStore(bs.Firestore)
	secrets := store.NewSecretStore(bs.Secrets)

	// webhook shared secret, read once at startup
	webhookSecret := ""
	if cfg.WebhookSecretName != "" {
		webhookSecret, err = secrets.Read(context.Background(), cfg.WebhookSecretName)
		exitOnError("webhook secret read failed", err, bs.Log)
	}

	// services
	userv := services.NewUserService(ustore)
	lserv := services.NewLedgerService(tstore, cstore, astore)
	dserv := services.NewDashboardService(sstore, tstore, cstore, bs.Clock)
	caserv := services.NewCategoryService(cstore, tstore, astore)
	wserv := services.NewWebhookService(lserv, caserv, wstore, bs.Clock)
	scserv := services.NewScheduleService(pstore, lserv, cstore, astore, bs.Clock)
	eserv := services.NewExportService(tstore, cstore, dserv, bs.Clock)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.Clock = bs.Clock
	deps.WebhookSecret = webhookSecret
	deps.UserSvc = userv
	deps.LedgerSvc = lserv
	deps.DashboardSvc = dserv
	deps.CategorySvc = caserv
	deps.WebhookSvc = wserv
	deps.ScheduleSvc = scserv
	deps.ExportSvc = eserv

	// router
	mw := middleware.NewMiddleware(bs.Firebase, userv)
	r := router.NewRouter(deps, mw)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
