package models

import (
	"time"
)

// Transaction types. There is no "transfer" or multi-leg concept;
// every record is a single income or expense posting.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is an immutable ledger record. There is no update path:
// records are created and, rarely, deleted, and every create/delete
// carries its period-summary adjustment in the same Firestore
// transaction.
type Transaction struct {
	TransactionID string    `firestore:"transactionId" json:"transactionId"`
	Type          string    `firestore:"type" json:"type"`
	AmountCents   int64     `firestore:"amountCents" json:"amountCents"`
	CategoryID    string    `firestore:"categoryId" json:"categoryId"`
	Timestamp     time.Time `firestore:"timestamp" json:"timestamp"`
	Note          string    `firestore:"note,omitempty" json:"note,omitempty"`
	ClickupID     string    `firestore:"clickupId,omitempty" json:"clickupId,omitempty"`
	CompanyName   string    `firestore:"companyName,omitempty" json:"companyName,omitempty"`
	CreatedBy     string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
