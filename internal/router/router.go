package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kpapadakis/bookkeeper-backend/internal/handlers"
	"github.com/kpapadakis/bookkeeper-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps, mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wh := handlers.NewWebhookHandlers(deps)
	r.With(middleware.WebhookSecret(deps.WebhookSecret)).
		Mount("/webhook", wh.WebhookRoutes())

	ush := handlers.NewUserHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	dh := handlers.NewDashboardHandlers(deps)
	ch := handlers.NewCategoryHandlers(deps)
	sh := handlers.NewScheduleHandlers(deps)
	eh := handlers.NewExportHandlers(deps)

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.FirebaseAuth)

		r.Mount("/me", ush.UserRoutes())
		r.Mount("/transactions", txh.TransactionRoutes())
		r.Mount("/dashboard", dh.DashboardRoutes())
		r.Mount("/categories", ch.CategoryRoutes())
		r.With(middleware.RequireAdmin).Mount("/scheduled-payments", sh.ScheduleRoutes())
		r.With(middleware.RequireAdmin).Mount("/export", eh.ExportRoutes())
	})

	return r
}
