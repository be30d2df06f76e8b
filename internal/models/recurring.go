package models

import "time"

// Recurring is a user-managed subscription entry. NextDueDate is never
// advanced automatically.
type Recurring struct {
	RecurringID string    `firestore:"recurringId" json:"recurringId"`
	Name        string    `firestore:"name" json:"name"`
	Amount      float64   `firestore:"amount" json:"amount"`
	Currency    string    `firestore:"currency" json:"currency"`
	Category    string    `firestore:"category" json:"category"`
	Frequency   string    `firestore:"frequency" json:"frequency"`
	NextDueDate time.Time `firestore:"nextDueDate" json:"nextDueDate"`
	IsActive    bool      `firestore:"isActive" json:"isActive"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}
