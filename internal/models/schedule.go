package models

import (
	"time"
)

// Schedule frequencies. Advancement is calendar-aware (AddDate), so a
// monthly schedule due on the 15th stays on the 15th.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// ScheduledPayment is a repeated-payment template. The run-due sweep
// materializes one ledger transaction per elapsed due date and
// advances NextDueDate past now.
type ScheduledPayment struct {
	ScheduleID  string    `firestore:"scheduleId" json:"scheduleId"`
	Name        string    `firestore:"name" json:"name"`
	Type        string    `firestore:"type" json:"type"`
	AmountCents int64     `firestore:"amountCents" json:"amountCents"`
	CategoryID  string    `firestore:"categoryId" json:"categoryId"`
	Frequency   string    `firestore:"frequency" json:"frequency"`
	NextDueDate time.Time `firestore:"nextDueDate" json:"nextDueDate"`
	Active      bool      `firestore:"active" json:"active"`
	Note        string    `firestore:"note,omitempty" json:"note,omitempty"`
	CreatedBy   string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Advance returns the due date one frequency step after from.
func Advance(from time.Time, frequency string) time.Time {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	default: // monthly
		return from.AddDate(0, 1, 0)
	}
}
