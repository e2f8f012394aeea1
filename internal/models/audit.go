package models

import (
	"time"
)

// Audit actions recorded by the services.
const (
	AuditTransactionCreated = "transaction_created"
	AuditTransactionDeleted = "transaction_deleted"
	AuditCategoryCreated    = "category_created"
	AuditCategoryToggled    = "category_toggled"
	AuditCategoryDeleted    = "category_deleted"
	AuditScheduleRun        = "scheduled_payment_run"
)

// AuditEntry is a write-only trail row. The application never reads
// these back; failures writing them are logged and swallowed.
type AuditEntry struct {
	EntryID     string            `firestore:"entryId" json:"entryId"`
	Action      string            `firestore:"action" json:"action"`
	EntityType  string            `firestore:"entityType" json:"entityType"`
	EntityID    string            `firestore:"entityId" json:"entityId"`
	AmountCents int64             `firestore:"amountCents,omitempty" json:"amountCents,omitempty"`
	CategoryID  string            `firestore:"categoryId,omitempty" json:"categoryId,omitempty"`
	Actor       string            `firestore:"actor" json:"actor"`
	Metadata    map[string]string `firestore:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time         `firestore:"createdAt" json:"createdAt"`
}
