package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
	"github.com/programmableapple/financialAdvisor/pkg/logger"
)

const defaultCurrency = "$"

// transactionStore is the Firestore storage interface for transactions.
type transactionStore interface {
	Create(ctx context.Context, uid string, t *models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	Update(ctx context.Context, uid string, t *models.Transaction) error
	Delete(ctx context.Context, uid, transactionID string) error
	Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error)
	ListDue(ctx context.Context, uid string, now time.Time) ([]*models.Transaction, error)
	MarkCompleted(ctx context.Context, uid string, transactionIDs []string) error
}

// ledgerUpdater is the goal ledger interface; its methods never fail the
// surrounding transaction operation.
type ledgerUpdater interface {
	Apply(ctx context.Context, uid string, t *models.Transaction)
	Revert(ctx context.Context, uid string, t *models.Transaction)
}

type transactionService struct {
	txs    transactionStore
	ledger ledgerUpdater
	now    func() time.Time
}

func NewTransactionService(txs transactionStore, ledger ledgerUpdater) *transactionService {
	return &transactionService{txs: txs, ledger: ledger, now: time.Now}
}

func (s *transactionService) Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateTransactionType(req.Type); err != nil {
		return nil, err
	}
	if req.Amount < 0 {
		return nil, errs.NewValidationError("amount must not be negative")
	}
	if req.Category == "" {
		return nil, errs.NewValidationError("category is required")
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	// Upcoming only sticks for a future date; anything already due is
	// completed from the start.
	status := models.TransactionStatusCompleted
	if req.Status == models.TransactionStatusUpcoming && date.After(now) {
		status = models.TransactionStatusUpcoming
	} else if req.Status != "" &&
		req.Status != models.TransactionStatusCompleted &&
		req.Status != models.TransactionStatusUpcoming {
		return nil, errs.NewValidationError("status must be completed or upcoming")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	t := &models.Transaction{
		TransactionID: uuid.New().String(),
		Type:          req.Type,
		Amount:        req.Amount,
		Currency:      currency,
		Category:      req.Category,
		Description:   req.Description,
		Date:          date,
		Status:        status,
	}
	if err := s.txs.Create(ctx, uid, t); err != nil {
		return nil, err
	}

	// Upcoming transactions contribute nothing until they are promoted.
	if t.Completed() {
		s.ledger.Apply(ctx, uid, t)
	}
	return t, nil
}

// List promotes due transactions first so the listing reflects the
// current completed/upcoming partition.
func (s *transactionService) List(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	if err := s.PromoteDue(ctx, uid); err != nil {
		return nil, err
	}
	return s.txs.Query(ctx, uid, q)
}

func (s *transactionService) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	return s.txs.Get(ctx, uid, transactionID)
}

func (s *transactionService) Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	original, err := s.txs.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *original
	if req.Type != nil {
		if err := validateTransactionType(*req.Type); err != nil {
			return nil, err
		}
		updated.Type = *req.Type
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, errs.NewValidationError("amount must not be negative")
		}
		updated.Amount = *req.Amount
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, errs.NewValidationError("category is required")
		}
		updated.Category = *req.Category
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Status != nil {
		switch *req.Status {
		case models.TransactionStatusCompleted, models.TransactionStatusUpcoming:
			updated.Status = *req.Status
		default:
			return nil, errs.NewValidationError("status must be completed or upcoming")
		}
	}

	if err := s.txs.Update(ctx, uid, &updated); err != nil {
		return nil, err
	}

	// Revert-then-reapply keeps the linked goal right even when the edit
	// moved the transaction to a different goal.
	if original.Completed() {
		s.ledger.Revert(ctx, uid, original)
	}
	if updated.Completed() {
		s.ledger.Apply(ctx, uid, &updated)
	}
	return &updated, nil
}

func (s *transactionService) Delete(ctx context.Context, uid, transactionID string) error {
	t, err := s.txs.Get(ctx, uid, transactionID)
	if err != nil {
		return err
	}
	if err := s.txs.Delete(ctx, uid, transactionID); err != nil {
		return err
	}
	// An upcoming transaction never contributed to its goal.
	if t.Completed() {
		s.ledger.Revert(ctx, uid, t)
	}
	return nil
}

// PromoteDue is the lifecycle sweep: every upcoming transaction whose
// date has arrived becomes completed and its goal effect is applied.
// Running it twice is a no-op the second time because the selection
// filter excludes completed transactions.
func (s *transactionService) PromoteDue(ctx context.Context, uid string) error {
	due, err := s.txs.ListDue(ctx, uid, s.now())
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	ids := make([]string, len(due))
	for i, t := range due {
		ids[i] = t.TransactionID
	}
	if err := s.txs.MarkCompleted(ctx, uid, ids); err != nil {
		return err
	}

	for _, t := range due {
		t.Status = models.TransactionStatusCompleted
		s.ledger.Apply(ctx, uid, t)
	}

	logger.FromContext(ctx).Info("promoted due transactions", "count", len(due))
	return nil
}

func validateTransactionType(t string) error {
	switch t {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return nil
	}
	return errs.NewValidationError("type must be income or expense")
}
