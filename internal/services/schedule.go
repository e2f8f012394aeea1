package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kpapadakis/bookkeeper-backend/internal/dto"
	"github.com/kpapadakis/bookkeeper-backend/internal/errs"
	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/internal/period"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

type scheduleSStore interface {
	Create(ctx context.Context, sp *models.ScheduledPayment) error
	Get(ctx context.Context, id string) (*models.ScheduledPayment, error)
	List(ctx context.Context) ([]models.ScheduledPayment, error)
	Due(ctx context.Context, now time.Time) ([]models.ScheduledPayment, error)
	Update(ctx context.Context, sp *models.ScheduledPayment) error
	Delete(ctx context.Context, id string) error
}

type scheduleLedger interface {
	Create(ctx context.Context, createdBy string, req dto.CreateTransactionRequest) (*models.Transaction, error)
}

type scheduleService struct {
	store  scheduleSStore
	ledger scheduleLedger
	cats   ledgerCategoryStore
	audit  auditAppender
	clock  *period.Clock
	now    func() time.Time
}

func NewScheduleService(store scheduleSStore, ledger scheduleLedger, cats ledgerCategoryStore, audit auditAppender, clock *period.Clock) *scheduleService {
	return &scheduleService{
		store:  store,
		ledger: ledger,
		cats:   cats,
		audit:  audit,
		clock:  clock,
		now:    time.Now,
	}
}

func (s *scheduleService) List(ctx context.Context) ([]models.ScheduledPayment, error) {
	return s.store.List(ctx)
}

func (s *scheduleService) Create(ctx context.Context, createdBy string, req dto.CreateScheduleRequest) (*models.ScheduledPayment, error) {
	if err := s.validate(ctx, req.Name, req.Type, req.AmountCents, req.CategoryID, req.Frequency); err != nil {
		return nil, err
	}
	nextDue, err := s.clock.ParseDateKey(req.NextDueDate)
	if err != nil {
		return nil, errs.NewValidationError("nextDueDate must be YYYY-MM-DD")
	}

	now := time.Now()
	sp := &models.ScheduledPayment{
		ScheduleID:  uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		AmountCents: req.AmountCents,
		CategoryID:  req.CategoryID,
		Frequency:   req.Frequency,
		NextDueDate: nextDue,
		Active:      true,
		Note:        req.Note,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.ScheduledPayment, error) {
	sp, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req.Name, req.Type, req.AmountCents, req.CategoryID, req.Frequency); err != nil {
		return nil, err
	}
	nextDue, err := s.clock.ParseDateKey(req.NextDueDate)
	if err != nil {
		return nil, errs.NewValidationError("nextDueDate must be YYYY-MM-DD")
	}

	sp.Name = req.Name
	sp.Type = req.Type
	sp.AmountCents = req.AmountCents
	sp.CategoryID = req.CategoryID
	sp.Frequency = req.Frequency
	sp.NextDueDate = nextDue
	sp.Note = req.Note
	if req.Active != nil {
		sp.Active = *req.Active
	}

	if err := s.store.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// RunDue materializes one ledger transaction per elapsed due date of
// every active schedule, then advances the schedule past now.
//
// The ledger create and the schedule advance are separate writes: a
// crash between them can generate the same due date again on the next
// sweep. The upstream design never defined an idempotency key for
// generated transactions, so this window is left open rather than
// guessed at; the sweep is admin-triggered and not safe to invoke
// concurrently.
func (s *scheduleService) RunDue(ctx context.Context, actor string) (dto.RunDueResult, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	due, err := s.store.Due(ctx, now)
	if err != nil {
		return dto.RunDueResult{}, err
	}

	result := dto.RunDueResult{}
	for i := range due {
		sp := due[i]
		made := 0

		for !sp.NextDueDate.After(now) {
			t, err := s.ledger.Create(ctx, sp.CreatedBy, dto.CreateTransactionRequest{
				Type:        sp.Type,
				AmountCents: sp.AmountCents,
				CategoryID:  sp.CategoryID,
				Timestamp:   sp.NextDueDate,
				Note:        sp.Name,
			})
			if err != nil {
				return result, err
			}
			result.TransactionIDs = append(result.TransactionIDs, t.TransactionID)
			result.TransactionsMade++
			made++
			sp.NextDueDate = models.Advance(sp.NextDueDate, sp.Frequency)
		}

		if err := s.store.Update(ctx, &sp); err != nil {
			return result, err
		}
		result.SchedulesProcessed++

		s.auditSweep(ctx, actor, &sp, made)
		log.Info("scheduled payment processed",
			"schedule_id", sp.ScheduleID,
			"generated", made,
			"next_due", sp.NextDueDate)
	}
	return result, nil
}

func (s *scheduleService) validate(ctx context.Context, name, txType string, amountCents int64, categoryID, frequency string) error {
	if name == "" {
		return errs.NewValidationError("name is required")
	}
	if !models.ValidType(txType) {
		return errs.NewValidationError("type must be income or expense")
	}
	if amountCents <= 0 {
		return errs.NewValidationError("amountCents must be positive")
	}
	if !models.ValidFrequency(frequency) {
		return errs.NewValidationError("frequency must be daily, weekly, monthly or yearly")
	}
	if _, err := s.cats.Get(ctx, categoryID); err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return errs.NewValidationError("category does not exist")
		}
		return err
	}
	return nil
}

func (s *scheduleService) auditSweep(ctx context.Context, actor string, sp *models.ScheduledPayment, generated int) {
	err := s.audit.Append(ctx, &models.AuditEntry{
		EntryID:     uuid.New().String(),
		Action:      models.AuditScheduleRun,
		EntityType:  "scheduled_payment",
		EntityID:    sp.ScheduleID,
		AmountCents: sp.AmountCents,
		CategoryID:  sp.CategoryID,
		Actor:       actor,
		Metadata: map[string]string{
			"generated": strconv.Itoa(generated),
			"frequency": sp.Frequency,
		},
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("audit append failed", "action", models.AuditScheduleRun, "error", err)
	}
}
