package dto

import (
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

// History table depths, most recent first.
const (
	WeeklyHistoryRows  = 8
	MonthlyHistoryRows = 12
)

// ChartPoint is one per-day bucket of the dashboard chart range.
type ChartPoint struct {
	Date         string `json:"date"`
	IncomeCents  int64  `json:"incomeCents"`
	ExpenseCents int64  `json:"expenseCents"`
	NetCents     int64  `json:"netCents"`
}

// PaymentTotals are the income-only Cash / Online Payment sub-totals
// for one period.
type PaymentTotals struct {
	CashCents   int64 `json:"cashCents"`
	OnlineCents int64 `json:"onlineCents"`
}

// DashboardData is the full dashboard aggregate: current-period
// summaries, the per-day chart, the rolling history tables and the
// payment-method totals per period.
type DashboardData struct {
	Today        models.PeriodSummary   `json:"today"`
	ThisWeek     models.PeriodSummary   `json:"thisWeek"`
	ThisMonth    models.PeriodSummary   `json:"thisMonth"`
	Chart        []ChartPoint           `json:"chart"`
	WeeklyRows   []models.PeriodSummary `json:"weeklyRows"`
	MonthlyRows  []models.PeriodSummary `json:"monthlyRows"`
	PaymentDay   PaymentTotals          `json:"paymentDay"`
	PaymentWeek  PaymentTotals          `json:"paymentWeek"`
	PaymentMonth PaymentTotals          `json:"paymentMonth"`
}

// MonthReport is the export document: current-month KPIs plus the
// history tables, ready for a renderer to format.
type MonthReport struct {
	MonthKey    string                 `json:"monthKey"`
	Summary     models.PeriodSummary   `json:"summary"`
	Payment     PaymentTotals          `json:"payment"`
	WeeklyRows  []models.PeriodSummary `json:"weeklyRows"`
	MonthlyRows []models.PeriodSummary `json:"monthlyRows"`
	GeneratedAt string                 `json:"generatedAt"`
	GeneratedBy string                 `json:"generatedBy"`
}
