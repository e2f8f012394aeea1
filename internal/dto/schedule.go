package dto

type CreateScheduleRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amountCents"`
	CategoryID  string `json:"categoryId"`
	Frequency   string `json:"frequency"`
	NextDueDate string `json:"nextDueDate"` // YYYY-MM-DD in the civil zone
	Note        string `json:"note,omitempty"`
}

type UpdateScheduleRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amountCents"`
	CategoryID  string `json:"categoryId"`
	Frequency   string `json:"frequency"`
	NextDueDate string `json:"nextDueDate"`
	Active      *bool  `json:"active,omitempty"`
	Note        string `json:"note,omitempty"`
}

// RunDueResult reports one sweep: how many schedules were due and how
// many ledger transactions were generated.
type RunDueResult struct {
	SchedulesProcessed int      `json:"schedulesProcessed"`
	TransactionsMade   int      `json:"transactionsMade"`
	TransactionIDs     []string `json:"transactionIds,omitempty"`
}
