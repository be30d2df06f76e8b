package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) Create(ctx context.Context, uid string, t *models.Transaction) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	_, err := s.collection(uid).Doc(t.TransactionID).Set(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	doc, err := s.collection(uid).Doc(transactionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

func (s *transactionStore) Update(ctx context.Context, uid string, t *models.Transaction) error {
	t.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(t.TransactionID).Set(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, uid, transactionID string) error {
	_, err := s.collection(uid).Doc(transactionID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}

// Query returns the owner's transactions matching the filter, newest
// first.
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	query := s.collection(uid).Query
	if q.Type != "" {
		query = query.Where("type", "==", q.Type)
	}
	if q.Category != "" {
		query = query.Where("category", "==", q.Category)
	}
	if q.Status != "" {
		query = query.Where("status", "==", q.Status)
	}
	if q.DateFrom != nil {
		query = query.Where("date", ">=", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("date", "<=", *q.DateTo)
	}
	docs, err := query.OrderBy("date", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to query transactions", err)
	}
	txs := make([]*models.Transaction, 0, len(docs))
	for _, d := range docs {
		var t models.Transaction
		if err := d.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		txs = append(txs, &t)
	}
	return txs, nil
}

// ListDue returns upcoming transactions whose date has arrived.
func (s *transactionStore) ListDue(ctx context.Context, uid string, now time.Time) ([]*models.Transaction, error) {
	return s.Query(ctx, uid, dto.TransactionQuery{
		Status: models.TransactionStatusUpcoming,
		DateTo: &now,
	})
}

type completeJob struct {
	transactionID string
	job           *firestore.BulkWriterJob
}

// MarkCompleted flips the given transactions to completed in one batch.
func (s *transactionStore) MarkCompleted(ctx context.Context, uid string, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid)
	now := time.Now()

	jobs := make([]completeJob, 0, len(transactionIDs))
	for _, id := range transactionIDs {
		ref := coll.Doc(id)
		j, err := bw.Update(ref, []firestore.Update{
			{Path: "status", Value: models.TransactionStatusCompleted},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return errs.NewDatabaseError("update", "failed to schedule status update", err)
		}
		jobs = append(jobs, completeJob{transactionID: id, job: j})
	}
	bw.End()

	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			return errs.NewDatabaseError("update", "failed to mark transaction completed", err)
		}
	}
	return nil
}
