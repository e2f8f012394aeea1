package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
)

const (
	transactionsCollection = "transactions"
)

type transactionStore struct {
	client *firestore.Client
	clock  *period.Clock
}

func NewTransactionStore(client *firestore.Client, clock *period.Clock) *transactionStore {
	return &transactionStore{client: client, clock: clock}
}

func (s *transactionStore) collection() *firestore.CollectionRef {
	return s.client.Collection(transactionsCollection)
}

// Create persists the record and applies the daily/weekly/monthly
// summary increments in one Firestore transaction. A crash anywhere
// leaves either all four writes applied or none.
func (s *transactionStore) Create(ctx context.Context, t *models.Transaction) error {
	adj := models.NewAdjustment(t.Type, t.AmountCents)
	doc := s.collection().Doc(t.TransactionID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(doc, t); err != nil {
			return err
		}
		return applySummaryAdjustment(tx, s.client, s.clock, t, adj)
	})
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// Delete removes the record and reverses its summary contribution
// atomically with the delete.
func (s *transactionStore) Delete(ctx context.Context, id string) (*models.Transaction, error) {
	doc := s.collection().Doc(id)
	var deleted models.Transaction

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(doc)
		if err != nil {
			return err
		}
		if err := snap.DataTo(&deleted); err != nil {
			return err
		}
		if err := tx.Delete(doc); err != nil {
			return err
		}
		adj := models.NewAdjustment(deleted.Type, deleted.AmountCents).Negate()
		return applySummaryAdjustment(tx, s.client, s.clock, &deleted, adj)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return &deleted, nil
}

func (s *transactionStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	var t models.Transaction
	if err := snap.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

// List returns the filtered page ordered by timestamp descending, and
// the total size of the filtered set independent of pagination.
func (s *transactionStore) List(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, int64, error) {
	base := s.filtered(f)

	total, err := s.count(ctx, base)
	if err != nil {
		return nil, 0, err
	}

	q := base.OrderBy("timestamp", firestore.Desc)
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	txs := make([]models.Transaction, 0, len(docs))
	for _, d := range docs {
		var t models.Transaction
		if err := d.DataTo(&t); err != nil {
			return nil, 0, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		txs = append(txs, t)
	}
	return txs, total, nil
}

// Scan streams every transaction in the inclusive instant range to
// handle, ordered by timestamp ascending. Used by the aggregation
// engine for chart buckets and payment totals.
func (s *transactionStore) Scan(ctx context.Context, f dto.TransactionFilter, handle func(*models.Transaction) error) error {
	q := s.filtered(f).OrderBy("timestamp", firestore.Asc)

	it := q.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err != nil {
			if isIteratorDone(err) {
				return nil
			}
			return errs.NewDatabaseError("read", "failed to scan transactions", err)
		}
		var t models.Transaction
		if err := snap.DataTo(&t); err != nil {
			return errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		if err := handle(&t); err != nil {
			return err
		}
	}
}

// CountByCategory backs the category in-use check on delete.
func (s *transactionStore) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	q := s.collection().Where("categoryId", "==", categoryID)
	return s.count(ctx, q)
}

func (s *transactionStore) filtered(f dto.TransactionFilter) firestore.Query {
	q := s.collection().Query
	if f.From != nil {
		q = q.Where("timestamp", ">=", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp", "<=", *f.To)
	}
	if f.Type != "" {
		q = q.Where("type", "==", f.Type)
	}
	if f.CategoryID != "" {
		q = q.Where("categoryId", "==", f.CategoryID)
	}
	if f.CreatedBy != "" {
		q = q.Where("createdBy", "==", f.CreatedBy)
	}
	return q
}

func (s *transactionStore) count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, errs.NewDatabaseError("read", "failed to count transactions", err)
	}
	v, ok := res["total"]
	if !ok {
		return 0, errs.NewDatabaseError("read", "count aggregation missing result", nil)
	}
	value, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, errs.NewDatabaseError("read", "count aggregation has unexpected type", nil)
	}
	return value.GetIntegerValue(), nil
}
