package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

const (
	monthLabelLayout  = "Jan 2006"
	trendWindowMonths = 6
	topCategoryLimit  = 5
	unusualFactor     = 1.5
)

// analyticsTransactionStore is the transaction query interface for
// aggregation.
type analyticsTransactionStore interface {
	Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error)
}

// dueSweeper promotes due upcoming transactions before stats are read.
type dueSweeper interface {
	PromoteDue(ctx context.Context, uid string) error
}

type analyticsService struct {
	txs     analyticsTransactionStore
	sweeper dueSweeper
	now     func() time.Time
}

func NewAnalyticsService(txs analyticsTransactionStore, sweeper dueSweeper) *analyticsService {
	return &analyticsService{txs: txs, sweeper: sweeper, now: time.Now}
}

// GetStats sums completed income and expenses, optionally limited to a
// calendar month (first day 00:00:00 through last day 23:59:59).
func (s *analyticsService) GetStats(ctx context.Context, uid string, args dto.StatsArgs) (dto.StatsResult, error) {
	result := dto.StatsResult{CategoryBreakdown: map[string]dto.CategoryTotals{}}

	if err := s.sweeper.PromoteDue(ctx, uid); err != nil {
		return result, err
	}

	q := dto.TransactionQuery{Status: models.TransactionStatusCompleted}
	if args.Month != 0 || args.Year != 0 {
		if args.Month < 1 || args.Month > 12 {
			return result, errs.NewValidationError("month must be between 1 and 12")
		}
		if args.Year == 0 {
			return result, errs.NewValidationError("year is required with month")
		}
		from, to := monthBounds(args.Year, time.Month(args.Month))
		q.DateFrom = &from
		q.DateTo = &to
	}

	txs, err := s.txs.Query(ctx, uid, q)
	if err != nil {
		return result, err
	}

	for _, t := range txs {
		totals := result.CategoryBreakdown[t.Category]
		switch t.Type {
		case models.TransactionTypeIncome:
			result.TotalIncome += t.Amount
			totals.Income += t.Amount
		case models.TransactionTypeExpense:
			result.TotalExpenses += t.Amount
			totals.Expense += t.Amount
		}
		result.CategoryBreakdown[t.Category] = totals
	}
	result.Balance = result.TotalIncome - result.TotalExpenses
	return result, nil
}

// GetSpendingTrends analyzes completed expenses over the last six
// calendar months (the current month plus five prior).
func (s *analyticsService) GetSpendingTrends(ctx context.Context, uid string) (dto.TrendsResult, error) {
	result := dto.TrendsResult{
		Trends:                    []dto.TrendPoint{},
		HighestSpendingCategories: []dto.CategorySpend{},
		UnusualPatterns:           []dto.UnusualPattern{},
	}

	now := s.now()
	from := time.Date(now.Year(), now.Month()-(trendWindowMonths-1), 1, 0, 0, 0, 0, now.Location())

	txs, err := s.txs.Query(ctx, uid, dto.TransactionQuery{
		Type:     models.TransactionTypeExpense,
		Status:   models.TransactionStatusCompleted,
		DateFrom: &from,
	})
	if err != nil {
		return result, err
	}

	// Oldest first so buckets appear in chronological order.
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	result.Trends = monthlyTrends(txs)
	result.HighestSpendingCategories = topCategories(txs)
	result.UnusualPatterns = unusualPatterns(txs, now)
	return result, nil
}

// --- Aggregation helpers ---

func monthlyTrends(txs []*models.Transaction) []dto.TrendPoint {
	sums := map[string]float64{}
	var order []string
	for _, t := range txs {
		label := t.Date.Format(monthLabelLayout)
		if _, ok := sums[label]; !ok {
			order = append(order, label)
		}
		sums[label] += t.Amount
	}

	points := make([]dto.TrendPoint, 0, len(order))
	for _, label := range order {
		points = append(points, dto.TrendPoint{Label: label, Amount: sums[label]})
	}
	return points
}

func topCategories(txs []*models.Transaction) []dto.CategorySpend {
	sums := map[string]float64{}
	for _, t := range txs {
		sums[t.Category] += t.Amount
	}

	spends := make([]dto.CategorySpend, 0, len(sums))
	for name, amount := range sums {
		spends = append(spends, dto.CategorySpend{Name: name, Amount: amount})
	}
	// Amount descending, name ascending on ties, so output is stable.
	sort.Slice(spends, func(i, j int) bool {
		if spends[i].Amount != spends[j].Amount {
			return spends[i].Amount > spends[j].Amount
		}
		return spends[i].Name < spends[j].Name
	})
	if len(spends) > topCategoryLimit {
		spends = spends[:topCategoryLimit]
	}
	return spends
}

// unusualPatterns flags categories whose current-month spend exceeds 1.5x
// their average over the other months in the window. The average divides
// by the number of distinct history months, not transactions.
func unusualPatterns(txs []*models.Transaction, now time.Time) []dto.UnusualPattern {
	currentLabel := now.Format(monthLabelLayout)

	type history struct {
		current      float64
		historyTotal float64
		months       map[string]struct{}
	}
	perCategory := map[string]*history{}
	var categories []string

	for _, t := range txs {
		h, ok := perCategory[t.Category]
		if !ok {
			h = &history{months: map[string]struct{}{}}
			perCategory[t.Category] = h
			categories = append(categories, t.Category)
		}
		label := t.Date.Format(monthLabelLayout)
		if label == currentLabel {
			h.current += t.Amount
		} else {
			h.historyTotal += t.Amount
			h.months[label] = struct{}{}
		}
	}

	sort.Strings(categories)

	var patterns []dto.UnusualPattern
	for _, cat := range categories {
		h := perCategory[cat]
		if len(h.months) == 0 {
			// No history to compare against.
			continue
		}
		average := h.historyTotal / float64(len(h.months))
		if average > 0 && h.current > average*unusualFactor {
			patterns = append(patterns, dto.UnusualPattern{
				Category:        cat,
				Current:         h.current,
				Average:         average,
				PercentIncrease: int(math.Round((h.current - average) / average * 100)),
			})
		}
	}
	if patterns == nil {
		patterns = []dto.UnusualPattern{}
	}
	return patterns
}

func monthBounds(year int, month time.Month) (from, to time.Time) {
	from = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to = from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}
