package dto

import "time"

type CreateRecurringRequest struct {
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Frequency   string    `json:"frequency"`
	NextDueDate time.Time `json:"nextDueDate"`
}

// Suggestion is a detector result; the caller confirms it by creating a
// real Recurring entry through the normal path.
type Suggestion struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	Frequency  string  `json:"frequency"`
	Confidence string  `json:"confidence"`
}

type DetectResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}
