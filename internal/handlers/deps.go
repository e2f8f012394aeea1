package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	Clock           *period.Clock
	WebhookSecret   string

	LedgerSvc    LedgerService
	DashboardSvc DashboardService
	CategorySvc  CategoryService
	UserSvc      UserService
	WebhookSvc   WebhookService
	ScheduleSvc  ScheduleService
	ExportSvc    ExportService
}
