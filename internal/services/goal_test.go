package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
	"github.com/programmableapple/financialAdvisor/pkg/helpers"
)

type fakeGoalStore struct {
	goals     map[string]*models.Goal
	createErr error
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[string]*models.Goal)}
}

func (f *fakeGoalStore) Create(_ context.Context, _ string, g *models.Goal) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.goals[g.GoalID] = g
	return nil
}

func (f *fakeGoalStore) Get(_ context.Context, _, goalID string) (*models.Goal, error) {
	g, ok := f.goals[goalID]
	if !ok {
		return nil, errs.NewNotFoundError("goal not found")
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoalStore) Update(_ context.Context, _ string, g *models.Goal) error {
	f.goals[g.GoalID] = g
	return nil
}

func (f *fakeGoalStore) Delete(_ context.Context, _, goalID string) error {
	delete(f.goals, goalID)
	return nil
}

func (f *fakeGoalStore) List(_ context.Context, _ string) ([]*models.Goal, error) {
	out := make([]*models.Goal, 0, len(f.goals))
	for _, g := range f.goals {
		out = append(out, g)
	}
	return out, nil
}

func TestCreateGoal_Defaults(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewGoalService(store)

	g, err := svc.Create(context.Background(), "uid1", dto.CreateGoalRequest{
		Name:         "Vacation",
		TargetAmount: 2000,
		TargetDate:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Color != "#3b82f6" {
		t.Errorf("expected default color, got %s", g.Color)
	}
	if g.Currency != "$" {
		t.Errorf("expected default currency $, got %s", g.Currency)
	}
	if g.CurrentAmount != 0 {
		t.Errorf("accumulator must start at zero, got %f", g.CurrentAmount)
	}
}

func TestCreateGoal_MissingTargetDate(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())
	_, err := svc.Create(context.Background(), "uid1", dto.CreateGoalRequest{
		Name:         "Vacation",
		TargetAmount: 2000,
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestUpdateGoal_AddAmount(t *testing.T) {
	store := newFakeGoalStore()
	store.goals["g1"] = &models.Goal{GoalID: "g1", Name: "Vacation", TargetAmount: 2000, CurrentAmount: 300}
	svc := NewGoalService(store)

	updated, err := svc.Update(context.Background(), "uid1", "g1", dto.UpdateGoalRequest{
		AddAmount: helpers.Ptr(150.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentAmount != 450 {
		t.Errorf("expected currentAmount 450, got %f", updated.CurrentAmount)
	}
}

func TestUpdateGoal_AddAmountWinsOverCurrentAmount(t *testing.T) {
	store := newFakeGoalStore()
	store.goals["g1"] = &models.Goal{GoalID: "g1", Name: "Vacation", TargetAmount: 2000, CurrentAmount: 300}
	svc := NewGoalService(store)

	updated, err := svc.Update(context.Background(), "uid1", "g1", dto.UpdateGoalRequest{
		CurrentAmount: helpers.Ptr(999.0),
		AddAmount:     helpers.Ptr(100.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentAmount != 400 {
		t.Errorf("addAmount must win over a literal currentAmount, got %f", updated.CurrentAmount)
	}
}

func TestUpdateGoal_NotFound(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())
	_, err := svc.Update(context.Background(), "uid1", "nonexistent", dto.UpdateGoalRequest{})
	var nfe *errs.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestDeleteGoal_NotFound(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())
	err := svc.Delete(context.Background(), "uid1", "nonexistent")
	var nfe *errs.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}
