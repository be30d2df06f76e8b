package models

import "time"

// Budget is a monthly cap for one category. (category, month, year) is
// unique per user. Spent/remaining/percentage are derived at read time and
// never stored.
type Budget struct {
	BudgetID  string    `firestore:"budgetId" json:"budgetId"`
	Category  string    `firestore:"category" json:"category"`
	Amount    float64   `firestore:"amount" json:"amount"`
	Currency  string    `firestore:"currency" json:"currency"`
	Month     int       `firestore:"month" json:"month"` // 1..12
	Year      int       `firestore:"year" json:"year"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
