package dto

import "time"

type CreateGoalRequest struct {
	Name         string    `json:"name"`
	TargetAmount float64   `json:"targetAmount"`
	Currency     string    `json:"currency"`
	TargetDate   time.Time `json:"targetDate"`
	Color        string    `json:"color"`
}

// UpdateGoalRequest: AddAmount increments the accumulator and wins over a
// literal CurrentAmount when both are sent.
type UpdateGoalRequest struct {
	Name          *string    `json:"name"`
	TargetAmount  *float64   `json:"targetAmount"`
	CurrentAmount *float64   `json:"currentAmount"`
	TargetDate    *time.Time `json:"targetDate"`
	Color         *string    `json:"color"`
	AddAmount     *float64   `json:"addAmount"`
}
