package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

const (
	detectWindowMonths  = 3
	detectMinOccurrence = 2
	detectMaxDeviation  = 0.1
)

// recurringStore is the Firestore storage interface for recurring
// entries.
type recurringStore interface {
	Create(ctx context.Context, uid string, r *models.Recurring) error
	Delete(ctx context.Context, uid, recurringID string) error
	ListActive(ctx context.Context, uid string) ([]*models.Recurring, error)
	List(ctx context.Context, uid string) ([]*models.Recurring, error)
}

type recurringService struct {
	recs recurringStore
	txs  analyticsTransactionStore
	now  func() time.Time
}

func NewRecurringService(recs recurringStore, txs analyticsTransactionStore) *recurringService {
	return &recurringService{recs: recs, txs: txs, now: time.Now}
}

func (s *recurringService) List(ctx context.Context, uid string) ([]*models.Recurring, error) {
	return s.recs.ListActive(ctx, uid)
}

func (s *recurringService) Add(ctx context.Context, uid string, req dto.CreateRecurringRequest) (*models.Recurring, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("name is required")
	}
	if req.Amount < 0 {
		return nil, errs.NewValidationError("amount must not be negative")
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = "monthly"
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	r := &models.Recurring{
		RecurringID: uuid.New().String(),
		Name:        req.Name,
		Amount:      req.Amount,
		Currency:    currency,
		Category:    req.Category,
		Frequency:   frequency,
		NextDueDate: req.NextDueDate,
		IsActive:    true,
	}
	if err := s.recs.Create(ctx, uid, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *recurringService) Delete(ctx context.Context, uid, recurringID string) error {
	return s.recs.Delete(ctx, uid, recurringID)
}

// Detect suggests likely subscriptions from the last three months of
// expenses. Transactions are grouped by trimmed, lowercased description;
// a group of two or more whose every amount stays within a strict 10% of
// the group mean becomes a suggestion, unless its name already exists
// among the user's recurring entries (case-insensitively). The frequency
// is always guessed as monthly; actual date gaps are not inspected.
// Detect never mutates state.
func (s *recurringService) Detect(ctx context.Context, uid string) (dto.DetectResult, error) {
	result := dto.DetectResult{Suggestions: []dto.Suggestion{}}

	from := s.now().AddDate(0, -detectWindowMonths, 0)
	txs, err := s.txs.Query(ctx, uid, dto.TransactionQuery{
		Type:     models.TransactionTypeExpense,
		DateFrom: &from,
	})
	if err != nil {
		return result, err
	}

	// Earliest first so "first transaction in the group" is well defined.
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	groups := map[string][]*models.Transaction{}
	for _, t := range txs {
		key := strings.ToLower(strings.TrimSpace(t.Description))
		groups[key] = append(groups[key], t)
	}

	existing, err := s.recs.List(ctx, uid)
	if err != nil {
		return result, err
	}
	existingNames := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		existingNames[strings.ToLower(r.Name)] = struct{}{}
	}

	type candidate struct {
		suggestion dto.Suggestion
		count      int
		key        string
	}
	var candidates []candidate

	for key, group := range groups {
		if len(group) < detectMinOccurrence {
			continue
		}
		var sum float64
		for _, t := range group {
			sum += t.Amount
		}
		avg := sum / float64(len(group))

		consistent := true
		for _, t := range group {
			if math.Abs(t.Amount-avg) >= avg*detectMaxDeviation {
				consistent = false
				break
			}
		}
		if !consistent {
			continue
		}

		name := group[0].Description // original casing
		if _, taken := existingNames[strings.ToLower(name)]; taken {
			continue
		}
		candidates = append(candidates, candidate{
			suggestion: dto.Suggestion{
				Name:       name,
				Amount:     math.Round(avg),
				Category:   group[0].Category,
				Frequency:  "monthly",
				Confidence: "high",
			},
			count: len(group),
			key:   key,
		})
	}

	// Most frequent first, name ascending on ties.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].key < candidates[j].key
	})
	for _, c := range candidates {
		result.Suggestions = append(result.Suggestions, c.suggestion)
	}
	return result, nil
}
