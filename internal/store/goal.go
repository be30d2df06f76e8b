package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("goals")
}

func (s *goalStore) Create(ctx context.Context, uid string, g *models.Goal) error {
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	_, err := s.collection(uid).Doc(g.GoalID).Set(ctx, g)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create goal", err)
	}
	return nil
}

func (s *goalStore) Get(ctx context.Context, uid, goalID string) (*models.Goal, error) {
	doc, err := s.collection(uid).Doc(goalID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("goal not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get goal", err)
	}
	var g models.Goal
	if err := doc.DataTo(&g); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	return &g, nil
}

func (s *goalStore) Update(ctx context.Context, uid string, g *models.Goal) error {
	g.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(g.GoalID).Set(ctx, g)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update goal", err)
	}
	return nil
}

func (s *goalStore) Delete(ctx context.Context, uid, goalID string) error {
	_, err := s.collection(uid).Doc(goalID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete goal", err)
	}
	return nil
}

// List returns goals ordered by target date, soonest first.
func (s *goalStore) List(ctx context.Context, uid string) ([]*models.Goal, error) {
	return s.list(ctx, uid, "targetDate")
}

// ListByCreation returns goals in creation order. The goal ledger scans
// this to resolve name matches deterministically.
func (s *goalStore) ListByCreation(ctx context.Context, uid string) ([]*models.Goal, error) {
	return s.list(ctx, uid, "createdAt")
}

func (s *goalStore) list(ctx context.Context, uid, orderBy string) ([]*models.Goal, error) {
	docs, err := s.collection(uid).OrderBy(orderBy, firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list goals", err)
	}
	goals := make([]*models.Goal, 0, len(docs))
	for _, d := range docs {
		var g models.Goal
		if err := d.DataTo(&g); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse goal data", err)
		}
		goals = append(goals, &g)
	}
	return goals, nil
}

// AddToCurrent adjusts the accumulator by delta (negative to remove) as a
// single-document increment.
func (s *goalStore) AddToCurrent(ctx context.Context, uid, goalID string, delta float64) error {
	_, err := s.collection(uid).Doc(goalID).Update(ctx, []firestore.Update{
		{Path: "currentAmount", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("goal not found")
		}
		return errs.NewDatabaseError("update", "failed to update goal amount", err)
	}
	return nil
}
