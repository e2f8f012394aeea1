package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

type scheduleStore struct {
	client *firestore.Client
}

func NewScheduleStore(client *firestore.Client) *scheduleStore {
	return &scheduleStore{client: client}
}

func (s *scheduleStore) collection() *firestore.CollectionRef {
	return s.client.Collection("scheduled_payments")
}

func (s *scheduleStore) Create(ctx context.Context, sp *models.ScheduledPayment) error {
	_, err := s.collection().Doc(sp.ScheduleID).Create(ctx, sp)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create scheduled payment", err)
	}
	return nil
}

func (s *scheduleStore) Get(ctx context.Context, id string) (*models.ScheduledPayment, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("scheduled payment not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get scheduled payment", err)
	}
	var sp models.ScheduledPayment
	if err := snap.DataTo(&sp); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse scheduled payment", err)
	}
	return &sp, nil
}

func (s *scheduleStore) List(ctx context.Context) ([]models.ScheduledPayment, error) {
	docs, err := s.collection().OrderBy("nextDueDate", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list scheduled payments", err)
	}
	out := make([]models.ScheduledPayment, 0, len(docs))
	for _, d := range docs {
		var sp models.ScheduledPayment
		if err := d.DataTo(&sp); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse scheduled payment", err)
		}
		out = append(out, sp)
	}
	return out, nil
}

// Due returns active schedules whose next due instant is at or before
// now, soonest first.
func (s *scheduleStore) Due(ctx context.Context, now time.Time) ([]models.ScheduledPayment, error) {
	docs, err := s.collection().
		Where("active", "==", true).
		Where("nextDueDate", "<=", now).
		OrderBy("nextDueDate", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to query due scheduled payments", err)
	}
	out := make([]models.ScheduledPayment, 0, len(docs))
	for _, d := range docs {
		var sp models.ScheduledPayment
		if err := d.DataTo(&sp); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse scheduled payment", err)
		}
		out = append(out, sp)
	}
	return out, nil
}

func (s *scheduleStore) Update(ctx context.Context, sp *models.ScheduledPayment) error {
	sp.UpdatedAt = time.Now()
	_, err := s.collection().Doc(sp.ScheduleID).Set(ctx, sp)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update scheduled payment", err)
	}
	return nil
}

func (s *scheduleStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete scheduled payment", err)
	}
	return nil
}
