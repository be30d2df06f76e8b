package dto

import "github.com/programmableapple/financialAdvisor/internal/models"

type CreateBudgetRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

type UpdateBudgetRequest struct {
	Category *string  `json:"category"`
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	Month    *int     `json:"month"`
	Year     *int     `json:"year"`
}

// BudgetReport is a budget plus its derived consumption for the budget's
// calendar month. Percentage is 0 when the cap is 0.
type BudgetReport struct {
	models.Budget
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetsArgs filters the listing; zero values mean "all".
type BudgetsArgs struct {
	Month int
	Year  int
}
