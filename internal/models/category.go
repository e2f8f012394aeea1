package models

import (
	"time"
)

// Category type values. An empty Type is a legacy untyped category and
// matches either transaction type when listing.
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
	CategoryTypeBoth    = "both"
)

// Reserved payment-method category names. The aggregation engine
// resolves these by exact name and counts only income-typed
// transactions against them toward cash/online payment totals.
const (
	CategoryCash          = "Cash"
	CategoryOnlinePayment = "Online Payment"
)

type Category struct {
	CategoryID string    `firestore:"categoryId" json:"categoryId"`
	Name       string    `firestore:"name" json:"name"`
	Type       string    `firestore:"type,omitempty" json:"type,omitempty"`
	Active     bool      `firestore:"active" json:"active"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// MatchesType reports whether the category can be used for the given
// transaction type.
func (c *Category) MatchesType(txType string) bool {
	return c.Type == "" || c.Type == CategoryTypeBoth || c.Type == txType
}
