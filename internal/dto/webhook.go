package dto

// Sentinel category ids accepted by the webhook in place of a real id.
const (
	WebhookCategoryCash   = "cash"
	WebhookCategoryOnline = "online"
)

// WebhookTransactionRequest is the ingestion payload. Date accepts
// RFC3339 or bare YYYY-MM-DD; Amount is in major units and is rounded
// to cents.
type WebhookTransactionRequest struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	CategoryID  string  `json:"categoryId"`
	CreatedBy   string  `json:"createdBy"`
	Note        string  `json:"note,omitempty"`
	ClickupID   string  `json:"clickupId,omitempty"`
	CompanyName string  `json:"companyName,omitempty"`
}

type WebhookTransactionResponse struct {
	TransactionID string `json:"transactionId"`
}
