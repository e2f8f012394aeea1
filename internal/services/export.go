package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
)

type exportTransactionStore interface {
	Scan(ctx context.Context, f dto.TransactionFilter, handle func(*models.Transaction) error) error
}

type exportCategoryStore interface {
	List(ctx context.Context, f dto.CategoryFilter) ([]models.Category, error)
}

type exportDashboard interface {
	GetDashboardData(ctx context.Context, chartFrom, chartTo *time.Time) (dto.DashboardData, error)
	PaymentTotalsFor(ctx context.Context, at time.Time) (dto.PaymentTotals, error)
}

type exportService struct {
	txs       exportTransactionStore
	cats      exportCategoryStore
	dashboard exportDashboard
	clock     *period.Clock
	now       func() time.Time
}

func NewExportService(txs exportTransactionStore, cats exportCategoryStore, dashboard exportDashboard, clock *period.Clock) *exportService {
	return &exportService{
		txs:       txs,
		cats:      cats,
		dashboard: dashboard,
		clock:     clock,
		now:       time.Now,
	}
}

var csvHeader = []string{"date", "type", "amount", "category", "note", "company", "createdBy"}

// WriteTransactionsCSV streams the filtered ledger as CSV. Amounts are
// formatted to major units here and nowhere else; the aggregation core
// never leaves integer cents.
func (s *exportService) WriteTransactionsCSV(ctx context.Context, f dto.TransactionFilter, w io.Writer) error {
	if f.Type != "" && !models.ValidType(f.Type) {
		return errs.NewValidationError("type must be income or expense")
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	err = s.txs.Scan(ctx, f, func(t *models.Transaction) error {
		name := names[t.CategoryID]
		if name == "" {
			name = t.CategoryID
		}
		return cw.Write([]string{
			s.clock.DateKey(t.Timestamp),
			t.Type,
			FormatCents(t.AmountCents),
			name,
			t.Note,
			t.CompanyName,
			t.CreatedBy,
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// MonthReport assembles the export document: current-month KPIs plus
// the history tables the dashboard already maintains.
func (s *exportService) MonthReport(ctx context.Context, generatedBy string) (dto.MonthReport, error) {
	now := s.now()

	data, err := s.dashboard.GetDashboardData(ctx, nil, nil)
	if err != nil {
		return dto.MonthReport{}, err
	}
	payment, err := s.dashboard.PaymentTotalsFor(ctx, now)
	if err != nil {
		return dto.MonthReport{}, err
	}

	return dto.MonthReport{
		MonthKey:    s.clock.MonthKey(now),
		Summary:     data.ThisMonth,
		Payment:     payment,
		WeeklyRows:  data.WeeklyRows,
		MonthlyRows: data.MonthlyRows,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		GeneratedBy: generatedBy,
	}, nil
}

func (s *exportService) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := s.cats.List(ctx, dto.CategoryFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.CategoryID] = c.Name
	}
	return names, nil
}

// FormatCents renders integer cents as a major-unit decimal string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
