package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

const defaultCategoryIcon = "📁"

type categoryStore interface {
	Create(ctx context.Context, uid string, c *models.Category) error
	List(ctx context.Context, uid string) ([]*models.Category, error)
	Delete(ctx context.Context, uid, categoryID string) error
}

type categoryService struct {
	categories categoryStore
}

func NewCategoryService(categories categoryStore) *categoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("name is required")
	}
	if req.Type != models.TransactionTypeIncome && req.Type != models.TransactionTypeExpense {
		return nil, errs.NewValidationError("type must be income or expense")
	}

	icon := req.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}
	c := &models.Category{
		CategoryID: uuid.New().String(),
		Name:       req.Name,
		Type:       req.Type,
		Icon:       icon,
	}
	if err := s.categories.Create(ctx, uid, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context, uid string) ([]*models.Category, error) {
	return s.categories.List(ctx, uid)
}

func (s *categoryService) Delete(ctx context.Context, uid, categoryID string) error {
	return s.categories.Delete(ctx, uid, categoryID)
}
