package dto

// StatsArgs is the optional calendar-month filter for GetStats. Month and
// Year are applied together or not at all.
type StatsArgs struct {
	Month int
	Year  int
}

type CategoryTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type StatsResult struct {
	TotalIncome       float64                   `json:"totalIncome"`
	TotalExpenses     float64                   `json:"totalExpenses"`
	Balance           float64                   `json:"balance"`
	CategoryBreakdown map[string]CategoryTotals `json:"categoryBreakdown"`
}
