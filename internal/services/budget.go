package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

// budgetStore is the Firestore storage interface for budgets.
type budgetStore interface {
	Create(ctx context.Context, uid string, b *models.Budget) error
	Get(ctx context.Context, uid, budgetID string) (*models.Budget, error)
	Update(ctx context.Context, uid string, b *models.Budget) error
	Delete(ctx context.Context, uid, budgetID string) error
	List(ctx context.Context, uid string, month, year int) ([]*models.Budget, error)
	FindByPeriod(ctx context.Context, uid, category string, month, year int) (*models.Budget, error)
}

type budgetService struct {
	budgets budgetStore
	txs     analyticsTransactionStore
	sweeper dueSweeper
}

func NewBudgetService(budgets budgetStore, txs analyticsTransactionStore, sweeper dueSweeper) *budgetService {
	return &budgetService{budgets: budgets, txs: txs, sweeper: sweeper}
}

func (s *budgetService) Create(ctx context.Context, uid string, req dto.CreateBudgetRequest) (*models.Budget, error) {
	if err := validateBudgetFields(req.Category, req.Amount, req.Month, req.Year); err != nil {
		return nil, err
	}
	if err := s.ensureSlotFree(ctx, uid, req.Category, req.Month, req.Year, ""); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	b := &models.Budget{
		BudgetID: uuid.New().String(),
		Category: req.Category,
		Amount:   req.Amount,
		Currency: currency,
		Month:    req.Month,
		Year:     req.Year,
	}
	if err := s.budgets.Create(ctx, uid, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBudgets lists budgets with their derived consumption. Spent counts
// completed expense transactions in the budget's category and calendar
// month; remaining may go negative; percentage is 0 for a zero cap.
func (s *budgetService) GetBudgets(ctx context.Context, uid string, args dto.BudgetsArgs) ([]dto.BudgetReport, error) {
	if err := s.sweeper.PromoteDue(ctx, uid); err != nil {
		return nil, err
	}

	budgets, err := s.budgets.List(ctx, uid, args.Month, args.Year)
	if err != nil {
		return nil, err
	}

	reports := make([]dto.BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.spentFor(ctx, uid, b)
		if err != nil {
			return nil, err
		}
		percentage := 0.0
		if b.Amount != 0 {
			percentage = spent / b.Amount * 100
		}
		reports = append(reports, dto.BudgetReport{
			Budget:     *b,
			Spent:      spent,
			Remaining:  b.Amount - spent,
			Percentage: percentage,
		})
	}
	return reports, nil
}

func (s *budgetService) Update(ctx context.Context, uid, budgetID string, req dto.UpdateBudgetRequest) (*models.Budget, error) {
	b, err := s.budgets.Get(ctx, uid, budgetID)
	if err != nil {
		return nil, err
	}

	updated := *b
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.Month != nil {
		updated.Month = *req.Month
	}
	if req.Year != nil {
		updated.Year = *req.Year
	}
	if err := validateBudgetFields(updated.Category, updated.Amount, updated.Month, updated.Year); err != nil {
		return nil, err
	}

	slotChanged := updated.Category != b.Category || updated.Month != b.Month || updated.Year != b.Year
	if slotChanged {
		if err := s.ensureSlotFree(ctx, uid, updated.Category, updated.Month, updated.Year, b.BudgetID); err != nil {
			return nil, err
		}
	}

	if err := s.budgets.Update(ctx, uid, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *budgetService) Delete(ctx context.Context, uid, budgetID string) error {
	if _, err := s.budgets.Get(ctx, uid, budgetID); err != nil {
		return err
	}
	return s.budgets.Delete(ctx, uid, budgetID)
}

func (s *budgetService) spentFor(ctx context.Context, uid string, b *models.Budget) (float64, error) {
	from, to := monthBounds(b.Year, time.Month(b.Month))
	txs, err := s.txs.Query(ctx, uid, dto.TransactionQuery{
		Type:     models.TransactionTypeExpense,
		Status:   models.TransactionStatusCompleted,
		Category: b.Category,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return 0, err
	}
	var spent float64
	for _, t := range txs {
		spent += t.Amount
	}
	return spent, nil
}

// ensureSlotFree enforces the (category, month, year) uniqueness rule.
func (s *budgetService) ensureSlotFree(ctx context.Context, uid, category string, month, year int, selfID string) error {
	existing, err := s.budgets.FindByPeriod(ctx, uid, category, month, year)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if existing.BudgetID == selfID {
		return nil
	}
	return errs.NewAlreadyExistsError("budget for this category/month/year already exists")
}

func validateBudgetFields(category string, amount float64, month, year int) error {
	if category == "" {
		return errs.NewValidationError("category is required")
	}
	if amount < 0 {
		return errs.NewValidationError("amount must not be negative")
	}
	if month < 1 || month > 12 {
		return errs.NewValidationError("month must be between 1 and 12")
	}
	if year == 0 {
		return errs.NewValidationError("year is required")
	}
	return nil
}
