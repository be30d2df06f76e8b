package services

import (
	"context"

	"github.com/programmableapple/financialAdvisor/internal/models"
	"github.com/programmableapple/financialAdvisor/pkg/logger"
)

// goalLedgerStore is the goal storage interface used by the ledger.
type goalLedgerStore interface {
	ListByCreation(ctx context.Context, uid string) ([]*models.Goal, error)
	AddToCurrent(ctx context.Context, uid, goalID string, delta float64) error
}

// goalLedger keeps Goal.currentAmount in sync with transaction lifecycle
// events. A transaction is linked to the goal whose name equals its
// category or, failing that, its description; goals are scanned in
// creation order so the match is deterministic. Failures here are logged
// and swallowed: the transaction operation itself must still succeed.
type goalLedger struct {
	goals goalLedgerStore
}

func NewGoalLedger(goals goalLedgerStore) *goalLedger {
	return &goalLedger{goals: goals}
}

// Apply credits the linked goal with the transaction amount.
func (l *goalLedger) Apply(ctx context.Context, uid string, t *models.Transaction) {
	l.adjust(ctx, uid, t, t.Amount)
}

// Revert debits the linked goal by the transaction amount.
func (l *goalLedger) Revert(ctx context.Context, uid string, t *models.Transaction) {
	l.adjust(ctx, uid, t, -t.Amount)
}

func (l *goalLedger) adjust(ctx context.Context, uid string, t *models.Transaction, delta float64) {
	log := logger.FromContext(ctx)

	goal, err := l.match(ctx, uid, t)
	if err != nil {
		log.Warn("goal ledger: lookup failed", "error", err)
		return
	}
	if goal == nil {
		// No linked goal; nothing to do.
		return
	}

	if err := l.goals.AddToCurrent(ctx, uid, goal.GoalID, delta); err != nil {
		log.Warn("goal ledger: update failed", "goal", goal.Name, "error", err)
		return
	}
	log.Info("goal ledger: adjusted goal",
		"goal", goal.Name,
		"delta", delta,
		"transaction_id", t.TransactionID)
}

// match finds the linked goal. A name equal to the transaction's category
// wins over one equal only to its description; within each tier the
// earliest-created goal wins.
func (l *goalLedger) match(ctx context.Context, uid string, t *models.Transaction) (*models.Goal, error) {
	goals, err := l.goals.ListByCreation(ctx, uid)
	if err != nil {
		return nil, err
	}

	var byDescription *models.Goal
	for _, g := range goals {
		if g.Name == t.Category {
			return g, nil
		}
		if byDescription == nil && g.Name == t.Description {
			byDescription = g
		}
	}
	return byDescription, nil
}
