package models

import (
	"time"
)

// WebhookFailure records a rejected ingestion payload for later
// inspection. RawPayload is the body exactly as received.
type WebhookFailure struct {
	FailureID  string    `firestore:"failureId" json:"failureId"`
	Reason     string    `firestore:"reason" json:"reason"`
	RawPayload string    `firestore:"rawPayload" json:"rawPayload"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
}
