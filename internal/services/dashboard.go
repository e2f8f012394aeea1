package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
)

type dashboardSummaryStore interface {
	Get(ctx context.Context, granularity, periodKey string) (*models.PeriodSummary, error)
	GetMany(ctx context.Context, granularity string, periodKeys []string) ([]models.PeriodSummary, error)
}

type dashboardTransactionStore interface {
	Scan(ctx context.Context, f dto.TransactionFilter, handle func(*models.Transaction) error) error
}

type dashboardCategoryStore interface {
	GetByName(ctx context.Context, name string) (*models.Category, error)
}

type dashboardService struct {
	summaries dashboardSummaryStore
	txs       dashboardTransactionStore
	cats      dashboardCategoryStore
	clock     *period.Clock
	now       func() time.Time
}

func NewDashboardService(summaries dashboardSummaryStore, txs dashboardTransactionStore, cats dashboardCategoryStore, clock *period.Clock) *dashboardService {
	return &dashboardService{
		summaries: summaries,
		txs:       txs,
		cats:      cats,
		clock:     clock,
		now:       time.Now,
	}
}

// GetDashboardData assembles the dashboard aggregate: current-period
// summaries read straight off the materialized counters, a per-day
// chart over the requested range (default: last 30 days), the 8-week
// and 12-month history tables and the Cash/Online payment totals per
// period. The independent Firestore reads fan out concurrently.
func (s *dashboardService) GetDashboardData(ctx context.Context, chartFrom, chartTo *time.Time) (dto.DashboardData, error) {
	now := s.now()

	to := now
	if chartTo != nil {
		to = *chartTo
	}
	from := to.AddDate(0, 0, -30)
	if chartFrom != nil {
		from = *chartFrom
	}
	if from.After(to) {
		return dto.DashboardData{}, errs.NewValidationError("chart range start is after its end")
	}

	var data dto.DashboardData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sum, err := s.summaries.Get(gctx, models.GranularityDaily, s.clock.DateKey(now))
		if err == nil {
			data.Today = *sum
		}
		return err
	})
	g.Go(func() error {
		sum, err := s.summaries.Get(gctx, models.GranularityWeekly, s.clock.ISOWeekKey(now))
		if err == nil {
			data.ThisWeek = *sum
		}
		return err
	})
	g.Go(func() error {
		sum, err := s.summaries.Get(gctx, models.GranularityMonthly, s.clock.MonthKey(now))
		if err == nil {
			data.ThisMonth = *sum
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.summaries.GetMany(gctx, models.GranularityWeekly, s.recentWeekKeys(now, dto.WeeklyHistoryRows))
		if err == nil {
			data.WeeklyRows = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.summaries.GetMany(gctx, models.GranularityMonthly, s.recentMonthKeys(now, dto.MonthlyHistoryRows))
		if err == nil {
			data.MonthlyRows = rows
		}
		return err
	})
	g.Go(func() error {
		points, err := s.chartPoints(gctx, from, to)
		if err == nil {
			data.Chart = points
		}
		return err
	})
	g.Go(func() error {
		day, week, month, err := s.paymentTotals(gctx, now)
		if err == nil {
			data.PaymentDay = day
			data.PaymentWeek = week
			data.PaymentMonth = month
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return dto.DashboardData{}, err
	}
	return data, nil
}

// PaymentTotalsFor returns the month payment totals, used by the
// report export.
func (s *dashboardService) PaymentTotalsFor(ctx context.Context, at time.Time) (dto.PaymentTotals, error) {
	cashID, onlineID, err := s.paymentCategoryIDs(ctx)
	if err != nil {
		return dto.PaymentTotals{}, err
	}
	from, to := s.clock.MonthRange(at)
	return s.scanPaymentRange(ctx, from, to, cashID, onlineID)
}

// recentWeekKeys lists the n ISO week keys ending at the week
// containing now, most recent first.
func (s *dashboardService) recentWeekKeys(now time.Time, n int) []string {
	local := now.In(s.clock.Location())

	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = s.clock.ISOWeekKey(local.AddDate(0, 0, -7*i))
	}
	return keys
}

// recentMonthKeys lists the n month keys ending at the month
// containing now, most recent first. Stepping happens from the first
// of the month so short months cannot skip a step.
func (s *dashboardService) recentMonthKeys(now time.Time, n int) []string {
	local := now.In(s.clock.Location())
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.clock.Location())

	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = s.clock.MonthKey(first.AddDate(0, -i, 0))
	}
	return keys
}

// chartPoints groups the scanned range into per-day buckets. Every
// civil day in the range appears, zero-filled when nothing was posted.
func (s *dashboardService) chartPoints(ctx context.Context, from, to time.Time) ([]dto.ChartPoint, error) {
	buckets := map[string]*dto.ChartPoint{}

	err := s.txs.Scan(ctx, dto.TransactionFilter{From: &from, To: &to}, func(t *models.Transaction) error {
		key := s.clock.DateKey(t.Timestamp)
		p, ok := buckets[key]
		if !ok {
			p = &dto.ChartPoint{Date: key}
			buckets[key] = p
		}
		if t.Type == models.TypeIncome {
			p.IncomeCents += t.AmountCents
		} else {
			p.ExpenseCents += t.AmountCents
		}
		p.NetCents = p.IncomeCents - p.ExpenseCents
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Step by civil date in the fixed zone. Advancing a UTC instant
	// by 24h repeats the date key on a 25-hour DST fall-back day.
	loc := s.clock.Location()
	local := from.In(loc)
	cursor := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	lastKey := s.clock.DateKey(to)

	var points []dto.ChartPoint
	for {
		key := s.clock.DateKey(cursor)
		if p, ok := buckets[key]; ok {
			points = append(points, *p)
		} else {
			points = append(points, dto.ChartPoint{Date: key})
		}
		if key == lastKey {
			break
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return points, nil
}

// paymentTotals computes the Cash / Online Payment sub-totals for the
// current day, week and month by scanning the ledger. Only
// income-typed transactions count; the payment categories are modeled
// as income-only channels, so expenses posted against them are
// excluded regardless of category type.
func (s *dashboardService) paymentTotals(ctx context.Context, now time.Time) (day, week, month dto.PaymentTotals, err error) {
	cashID, onlineID, err := s.paymentCategoryIDs(ctx)
	if err != nil {
		return
	}

	dayFrom, dayTo := s.clock.DayRange(now)
	weekFrom, weekTo := s.clock.WeekRange(now)
	monthFrom, monthTo := s.clock.MonthRange(now)

	day, err = s.scanPaymentRange(ctx, dayFrom, dayTo, cashID, onlineID)
	if err != nil {
		return
	}
	week, err = s.scanPaymentRange(ctx, weekFrom, weekTo, cashID, onlineID)
	if err != nil {
		return
	}
	month, err = s.scanPaymentRange(ctx, monthFrom, monthTo, cashID, onlineID)
	return
}

func (s *dashboardService) scanPaymentRange(ctx context.Context, from, to time.Time, cashID, onlineID string) (dto.PaymentTotals, error) {
	var totals dto.PaymentTotals
	if cashID == "" && onlineID == "" {
		return totals, nil
	}
	err := s.txs.Scan(ctx, dto.TransactionFilter{From: &from, To: &to, Type: models.TypeIncome}, func(t *models.Transaction) error {
		switch {
		case cashID != "" && t.CategoryID == cashID:
			totals.CashCents += t.AmountCents
		case onlineID != "" && t.CategoryID == onlineID:
			totals.OnlineCents += t.AmountCents
		}
		return nil
	})
	if err != nil {
		return dto.PaymentTotals{}, err
	}
	return totals, nil
}

// paymentCategoryIDs resolves the sentinel categories by name, per
// call. A missing sentinel simply contributes nothing.
func (s *dashboardService) paymentCategoryIDs(ctx context.Context) (cashID, onlineID string, err error) {
	cash, err := s.cats.GetByName(ctx, models.CategoryCash)
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); !ok {
			return "", "", err
		}
	} else {
		cashID = cash.CategoryID
	}

	online, err := s.cats.GetByName(ctx, models.CategoryOnlinePayment)
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); !ok {
			return "", "", err
		}
	} else {
		onlineID = online.CategoryID
	}
	return cashID, onlineID, nil
}
