package models

import "time"

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	TransactionStatusCompleted = "completed"
	TransactionStatusUpcoming  = "upcoming"
)

type Transaction struct {
	TransactionID string    `firestore:"transactionId" json:"transactionId"` // doc ID
	Type          string    `firestore:"type" json:"type"`                   // "income" | "expense"
	Amount        float64   `firestore:"amount" json:"amount"`
	Currency      string    `firestore:"currency" json:"currency"`
	Category      string    `firestore:"category" json:"category"`
	Description   string    `firestore:"description" json:"description"`
	Date          time.Time `firestore:"date" json:"date"`
	Status        string    `firestore:"status" json:"status"` // "completed" | "upcoming"
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Completed reports whether the transaction currently counts toward
// balances and linked goals.
func (t *Transaction) Completed() bool {
	return t.Status == TransactionStatusCompleted
}
