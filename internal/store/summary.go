package store

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
)

var summaryCollections = map[string]string{
	models.GranularityDaily:   "daily_summaries",
	models.GranularityWeekly:  "weekly_summaries",
	models.GranularityMonthly: "monthly_summaries",
}

// applySummaryAdjustment upserts the three period summaries for a
// transaction inside an open Firestore transaction. firestore.Increment
// makes the counter update a server-side atomic add, so concurrent
// writers on the same period key cannot lose updates, and a missing
// summary document is seeded from zero by the merge.
func applySummaryAdjustment(tx *firestore.Transaction, client *firestore.Client, clock *period.Clock, t *models.Transaction, adj models.SummaryAdjustment) error {
	keys := map[string]string{
		models.GranularityDaily:   clock.DateKey(t.Timestamp),
		models.GranularityWeekly:  clock.ISOWeekKey(t.Timestamp),
		models.GranularityMonthly: clock.MonthKey(t.Timestamp),
	}

	for granularity, key := range keys {
		ref := client.Collection(summaryCollections[granularity]).Doc(key)
		err := tx.Set(ref, map[string]any{
			"periodKey":    key,
			"incomeCents":  firestore.Increment(adj.IncomeCents),
			"expenseCents": firestore.Increment(adj.ExpenseCents),
			"netCents":     firestore.Increment(adj.NetCents()),
			"countIncome":  firestore.Increment(adj.CountIncome),
			"countExpense": firestore.Increment(adj.CountExpense),
			"updatedAt":    firestore.ServerTimestamp,
		}, firestore.MergeAll)
		if err != nil {
			return err
		}
	}
	return nil
}

func isIteratorDone(err error) bool {
	return errors.Is(err, iterator.Done)
}

type summaryStore struct {
	client *firestore.Client
}

func NewSummaryStore(client *firestore.Client) *summaryStore {
	return &summaryStore{client: client}
}

func (s *summaryStore) collection(granularity string) *firestore.CollectionRef {
	return s.client.Collection(summaryCollections[granularity])
}

// Get reads one summary document. A period nothing was ever posted to
// reads as an all-zero summary, not an error.
func (s *summaryStore) Get(ctx context.Context, granularity, periodKey string) (*models.PeriodSummary, error) {
	snap, err := s.collection(granularity).Doc(periodKey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &models.PeriodSummary{PeriodKey: periodKey}, nil
		}
		return nil, errs.NewDatabaseError("read", "failed to get period summary", err)
	}
	var sum models.PeriodSummary
	if err := snap.DataTo(&sum); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse period summary", err)
	}
	return &sum, nil
}

// GetMany reads summaries for an ordered key list, substituting zero
// rows for periods with no document. Result order follows keys.
func (s *summaryStore) GetMany(ctx context.Context, granularity string, periodKeys []string) ([]models.PeriodSummary, error) {
	if len(periodKeys) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, len(periodKeys))
	for i, key := range periodKeys {
		refs[i] = s.collection(granularity).Doc(key)
	}

	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get period summaries", err)
	}

	out := make([]models.PeriodSummary, len(periodKeys))
	for i, snap := range snaps {
		if !snap.Exists() {
			out[i] = models.PeriodSummary{PeriodKey: periodKeys[i]}
			continue
		}
		if err := snap.DataTo(&out[i]); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse period summary", err)
		}
	}
	return out, nil
}
