package dto

type TrendPoint struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type CategorySpend struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type UnusualPattern struct {
	Category        string  `json:"category"`
	Current         float64 `json:"current"`
	Average         float64 `json:"average"`
	PercentIncrease int     `json:"percentIncrease"`
}

type TrendsResult struct {
	Trends                    []TrendPoint     `json:"trends"`
	HighestSpendingCategories []CategorySpend  `json:"highestSpendingCategories"`
	UnusualPatterns           []UnusualPattern `json:"unusualPatterns"`
}
