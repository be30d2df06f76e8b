package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

type recurringStore struct {
	client *firestore.Client
}

func NewRecurringStore(client *firestore.Client) *recurringStore {
	return &recurringStore{client: client}
}

func (s *recurringStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("recurring")
}

func (s *recurringStore) Create(ctx context.Context, uid string, r *models.Recurring) error {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	_, err := s.collection(uid).Doc(r.RecurringID).Set(ctx, r)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create recurring entry", err)
	}
	return nil
}

func (s *recurringStore) Delete(ctx context.Context, uid, recurringID string) error {
	_, err := s.collection(uid).Doc(recurringID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete recurring entry", err)
	}
	return nil
}

// ListActive returns active entries ordered by next due date.
func (s *recurringStore) ListActive(ctx context.Context, uid string) ([]*models.Recurring, error) {
	docs, err := s.collection(uid).
		Where("isActive", "==", true).
		OrderBy("nextDueDate", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list recurring entries", err)
	}
	return docsToRecurring(docs)
}

// List returns every entry, active or not; the detector uses it to filter
// suggestions against names the user already tracks.
func (s *recurringStore) List(ctx context.Context, uid string) ([]*models.Recurring, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list recurring entries", err)
	}
	return docsToRecurring(docs)
}

func docsToRecurring(docs []*firestore.DocumentSnapshot) ([]*models.Recurring, error) {
	entries := make([]*models.Recurring, 0, len(docs))
	for _, d := range docs {
		var r models.Recurring
		if err := d.DataTo(&r); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse recurring data", err)
		}
		entries = append(entries, &r)
	}
	return entries, nil
}
