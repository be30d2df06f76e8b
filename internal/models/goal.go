package models

import "time"

// Goal is a savings target. CurrentAmount is an accumulator: it is only
// changed by the goal ledger (transaction lifecycle events) or an explicit
// add-funds request, and it may exceed TargetAmount.
type Goal struct {
	GoalID        string    `firestore:"goalId" json:"goalId"`
	Name          string    `firestore:"name" json:"name"`
	TargetAmount  float64   `firestore:"targetAmount" json:"targetAmount"`
	CurrentAmount float64   `firestore:"currentAmount" json:"currentAmount"`
	Currency      string    `firestore:"currency" json:"currency"`
	TargetDate    time.Time `firestore:"targetDate" json:"targetDate"`
	Color         string    `firestore:"color" json:"color"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}
