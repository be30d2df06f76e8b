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

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("categories")
}

func (s *categoryStore) Create(ctx context.Context, uid string, c *models.Category) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	_, err := s.collection(uid).Doc(c.CategoryID).Set(ctx, c)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) List(ctx context.Context, uid string) ([]*models.Category, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	categories := make([]*models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		categories = append(categories, &c)
	}
	return categories, nil
}

func (s *categoryStore) Delete(ctx context.Context, uid, categoryID string) error {
	// Confirm ownership so a delete of another user's id reads as not found.
	_, err := s.collection(uid).Doc(categoryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("category not found")
		}
		return errs.NewDatabaseError("read", "failed to get category", err)
	}
	if _, err := s.collection(uid).Doc(categoryID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}
