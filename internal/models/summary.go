package models

import (
	"time"
)

// Summary granularities double as the Firestore collection selectors.
const (
	GranularityDaily   = "daily"
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"
)

// PeriodSummary is a materialized rollup for one period key
// ("YYYY-MM-DD", "YYYY-Www" or "YYYY-MM"). Counters are maintained
// with atomic Firestore increments inside the same transaction as the
// ledger write they reflect, so they never drift from the ledger.
type PeriodSummary struct {
	PeriodKey    string    `firestore:"periodKey" json:"periodKey"`
	IncomeCents  int64     `firestore:"incomeCents" json:"incomeCents"`
	ExpenseCents int64     `firestore:"expenseCents" json:"expenseCents"`
	NetCents     int64     `firestore:"netCents" json:"netCents"`
	CountIncome  int64     `firestore:"countIncome" json:"countIncome"`
	CountExpense int64     `firestore:"countExpense" json:"countExpense"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// SummaryAdjustment is the per-period delta applied alongside a ledger
// write. Direction is carried in the sign of the fields; a delete is
// the create's adjustment negated.
type SummaryAdjustment struct {
	IncomeCents  int64
	ExpenseCents int64
	CountIncome  int64
	CountExpense int64
}

// NewAdjustment builds the summary delta for posting one transaction.
func NewAdjustment(txType string, amountCents int64) SummaryAdjustment {
	if txType == TypeIncome {
		return SummaryAdjustment{IncomeCents: amountCents, CountIncome: 1}
	}
	return SummaryAdjustment{ExpenseCents: amountCents, CountExpense: 1}
}

// Negate returns the reversing adjustment, used on delete.
func (a SummaryAdjustment) Negate() SummaryAdjustment {
	return SummaryAdjustment{
		IncomeCents:  -a.IncomeCents,
		ExpenseCents: -a.ExpenseCents,
		CountIncome:  -a.CountIncome,
		CountExpense: -a.CountExpense,
	}
}

// NetCents is the signed contribution to a period's net total.
func (a SummaryAdjustment) NetCents() int64 {
	return a.IncomeCents - a.ExpenseCents
}
