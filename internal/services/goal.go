package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

const defaultGoalColor = "#3b82f6"

// goalCrudStore is the Firestore storage interface for goals.
type goalCrudStore interface {
	Create(ctx context.Context, uid string, g *models.Goal) error
	Get(ctx context.Context, uid, goalID string) (*models.Goal, error)
	Update(ctx context.Context, uid string, g *models.Goal) error
	Delete(ctx context.Context, uid, goalID string) error
	List(ctx context.Context, uid string) ([]*models.Goal, error)
}

type goalService struct {
	goals goalCrudStore
}

func NewGoalService(goals goalCrudStore) *goalService {
	return &goalService{goals: goals}
}

func (s *goalService) Create(ctx context.Context, uid string, req dto.CreateGoalRequest) (*models.Goal, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("name is required")
	}
	if req.TargetAmount < 0 {
		return nil, errs.NewValidationError("targetAmount must not be negative")
	}
	if req.TargetDate.IsZero() {
		return nil, errs.NewValidationError("targetDate is required")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	color := req.Color
	if color == "" {
		color = defaultGoalColor
	}

	g := &models.Goal{
		GoalID:       uuid.New().String(),
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		// The accumulator always starts at zero; only the goal ledger and
		// explicit add-funds requests move it.
		CurrentAmount: 0,
		Currency:      currency,
		TargetDate:    req.TargetDate,
		Color:         color,
	}
	if err := s.goals.Create(ctx, uid, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) List(ctx context.Context, uid string) ([]*models.Goal, error) {
	return s.goals.List(ctx, uid)
}

func (s *goalService) Update(ctx context.Context, uid, goalID string, req dto.UpdateGoalRequest) (*models.Goal, error) {
	g, err := s.goals.Get(ctx, uid, goalID)
	if err != nil {
		return nil, err
	}

	updated := *g
	if req.Name != nil {
		if *req.Name == "" {
			return nil, errs.NewValidationError("name is required")
		}
		updated.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount < 0 {
			return nil, errs.NewValidationError("targetAmount must not be negative")
		}
		updated.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		updated.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		updated.TargetDate = *req.TargetDate
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	// Add-funds wins over a literal currentAmount.
	if req.AddAmount != nil {
		updated.CurrentAmount = g.CurrentAmount + *req.AddAmount
	}

	if err := s.goals.Update(ctx, uid, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *goalService) Delete(ctx context.Context, uid, goalID string) error {
	if _, err := s.goals.Get(ctx, uid, goalID); err != nil {
		return err
	}
	return s.goals.Delete(ctx, uid, goalID)
}
