package store

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTransactionSummaryRoundTripWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()

	clock := period.MustNew("Europe/Athens")
	txs := NewTransactionStore(client, clock)
	sums := NewSummaryStore(client)

	ts := time.Date(2030, time.March, 5, 10, 0, 0, 0, clock.Location())
	dayKey := clock.DateKey(ts)

	before, err := sums.Get(ctx, models.GranularityDaily, dayKey)
	if err != nil {
		t.Fatalf("summary read error: %v", err)
	}

	tx := &models.Transaction{
		TransactionID: uuid.New().String(),
		Type:          models.TypeIncome,
		AmountCents:   1250,
		CategoryID:    "cat-1",
		Timestamp:     ts,
		CreatedBy:     "u1",
		CreatedAt:     time.Now(),
	}
	if err := txs.Create(ctx, tx); err != nil {
		t.Fatalf("create error: %v", err)
	}

	// all three granularities moved by the same delta
	checks := map[string]string{
		models.GranularityDaily:   dayKey,
		models.GranularityWeekly:  clock.ISOWeekKey(ts),
		models.GranularityMonthly: clock.MonthKey(ts),
	}
	for granularity, key := range checks {
		sum, err := sums.Get(ctx, granularity, key)
		if err != nil {
			t.Fatalf("%s summary read error: %v", granularity, err)
		}
		if sum.IncomeCents < 1250 {
			t.Fatalf("%s incomeCents = %d, want at least 1250", granularity, sum.IncomeCents)
		}
	}

	got, err := txs.Get(ctx, tx.TransactionID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.AmountCents != 1250 || got.Type != models.TypeIncome {
		t.Fatalf("unexpected stored transaction: %+v", got)
	}

	deleted, err := txs.Delete(ctx, tx.TransactionID)
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if deleted.TransactionID != tx.TransactionID {
		t.Fatalf("deleted id = %s", deleted.TransactionID)
	}

	// delete reversed the contribution exactly
	after, err := sums.Get(ctx, models.GranularityDaily, dayKey)
	if err != nil {
		t.Fatalf("summary read error: %v", err)
	}
	if after.IncomeCents != before.IncomeCents || after.NetCents != before.NetCents {
		t.Fatalf("summary did not return to baseline: before=%+v after=%+v", before, after)
	}
	if after.CountIncome != before.CountIncome {
		t.Fatalf("countIncome drifted: before=%d after=%d", before.CountIncome, after.CountIncome)
	}

	if _, err := txs.Get(ctx, tx.TransactionID); err == nil {
		t.Fatal("deleted transaction still readable")
	}
}

func TestTransactionListFilterWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()

	clock := period.MustNew("Europe/Athens")
	txs := NewTransactionStore(client, clock)

	category := uuid.New().String()
	base := time.Date(2031, time.June, 10, 9, 0, 0, 0, clock.Location())
	for i, txType := range []string{models.TypeIncome, models.TypeExpense, models.TypeIncome} {
		tx := &models.Transaction{
			TransactionID: uuid.New().String(),
			Type:          txType,
			AmountCents:   int64(100 * (i + 1)),
			CategoryID:    category,
			Timestamp:     base.Add(time.Duration(i) * time.Hour),
			CreatedBy:     "u1",
			CreatedAt:     time.Now(),
		}
		if err := txs.Create(ctx, tx); err != nil {
			t.Fatalf("seed create error: %v", err)
		}
	}

	got, total, err := txs.List(ctx, dto.TransactionFilter{
		Type:       models.TypeIncome,
		CategoryID: category,
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("income list = %d rows total %d, want 2/2", len(got), total)
	}
	// newest first
	if got[0].Timestamp.Before(got[1].Timestamp) {
		t.Fatal("list is not ordered newest first")
	}

	n, err := txs.CountByCategory(ctx, category)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if n != 3 {
		t.Fatalf("countByCategory = %d, want 3", n)
	}
}
