package dto

import "time"

type CreateTransactionRequest struct {
	Type        string     `json:"type"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Status      string     `json:"status"`
}

// UpdateTransactionRequest carries only the fields to change; nil means
// "leave as is".
type UpdateTransactionRequest struct {
	Type        *string    `json:"type"`
	Amount      *float64   `json:"amount"`
	Currency    *string    `json:"currency"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Status      *string    `json:"status"`
}

// TransactionQuery is the store-level filter set; zero values mean "no
// filter".
type TransactionQuery struct {
	Type     string
	Category string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}
