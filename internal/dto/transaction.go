package dto

import (
	"time"

	"github.com/kpapadakis/bookkeeper-backend/internal/models"
)

// CreateTransactionRequest is the API payload for posting a ledger
// record. Amount is already in cents on this path; only the webhook
// accepts major units.
type CreateTransactionRequest struct {
	Type        string    `json:"type"`
	AmountCents int64     `json:"amountCents"`
	CategoryID  string    `json:"categoryId"`
	Timestamp   time.Time `json:"timestamp"`
	Note        string    `json:"note,omitempty"`
	ClickupID   string    `json:"clickupId,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
}

// TransactionFilter narrows a ledger listing. Zero values mean "no
// filter"; the time bounds are inclusive.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	Type       string
	CategoryID string
	CreatedBy  string
	Offset     int
	Limit      int
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	TotalCount   int64                `json:"totalCount"`
}
