package models

import "time"

// Category is a free-standing tag; Transaction.Category stays a plain
// string and is not checked against this list.
type Category struct {
	CategoryID string    `firestore:"categoryId" json:"categoryId"`
	Name       string    `firestore:"name" json:"name"`
	Type       string    `firestore:"type" json:"type"` // "income" | "expense"
	Icon       string    `firestore:"icon" json:"icon"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}
