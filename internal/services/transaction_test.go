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

// --- Fakes ---

type fakeTransactionStore struct {
	txs       map[string]*models.Transaction
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	queryErr  error
	markedIDs []string
	lastQuery dto.TransactionQuery
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{txs: make(map[string]*models.Transaction)}
}

func (f *fakeTransactionStore) Create(_ context.Context, _ string, t *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.txs[t.TransactionID] = t
	return nil
}

func (f *fakeTransactionStore) Get(_ context.Context, _, transactionID string) (*models.Transaction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	t, ok := f.txs[transactionID]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, _ string, t *models.Transaction) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.txs[t.TransactionID] = t
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, _, transactionID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.txs, transactionID)
	return nil
}

// Query filters the in-memory set the way the Firestore store composes
// its Where clauses, newest first.
func (f *fakeTransactionStore) Query(_ context.Context, _ string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	f.lastQuery = q
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []*models.Transaction
	for _, t := range f.txs {
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.DateFrom != nil && t.Date.Before(*q.DateFrom) {
			continue
		}
		if q.DateTo != nil && t.Date.After(*q.DateTo) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTransactionStore) ListDue(ctx context.Context, uid string, now time.Time) ([]*models.Transaction, error) {
	return f.Query(ctx, uid, dto.TransactionQuery{
		Status: models.TransactionStatusUpcoming,
		DateTo: &now,
	})
}

func (f *fakeTransactionStore) MarkCompleted(_ context.Context, _ string, transactionIDs []string) error {
	f.markedIDs = append(f.markedIDs, transactionIDs...)
	for _, id := range transactionIDs {
		if t, ok := f.txs[id]; ok {
			t.Status = models.TransactionStatusCompleted
		}
	}
	return nil
}

type fakeLedger struct {
	applied  []*models.Transaction
	reverted []*models.Transaction
}

func (f *fakeLedger) Apply(_ context.Context, _ string, t *models.Transaction) {
	f.applied = append(f.applied, t)
}

func (f *fakeLedger) Revert(_ context.Context, _ string, t *models.Transaction) {
	f.reverted = append(f.reverted, t)
}

// --- Create tests ---

func TestCreateTransaction_Defaults(t *testing.T) {
	store := newFakeTransactionStore()
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)

	tx, err := svc.Create(context.Background(), "uid1", dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Amount:   50,
		Category: "Food",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.TransactionID == "" {
		t.Error("expected non-empty transactionID")
	}
	if tx.Currency != "$" {
		t.Errorf("expected default currency $, got %s", tx.Currency)
	}
	if tx.Status != models.TransactionStatusCompleted {
		t.Errorf("expected completed status, got %s", tx.Status)
	}
	if len(ledger.applied) != 1 {
		t.Errorf("expected 1 ledger apply, got %d", len(ledger.applied))
	}
}

func TestCreateTransaction_UpcomingFutureDate(t *testing.T) {
	store := newFakeTransactionStore()
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	future := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	tx, err := svc.Create(context.Background(), "uid1", dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Amount:   15,
		Category: "Entertainment",
		Date:     &future,
		Status:   models.TransactionStatusUpcoming,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Status != models.TransactionStatusUpcoming {
		t.Errorf("expected upcoming status, got %s", tx.Status)
	}
	if len(ledger.applied) != 0 {
		t.Errorf("upcoming transaction must not touch the ledger, got %d applies", len(ledger.applied))
	}
}

func TestCreateTransaction_UpcomingPastDateBecomesCompleted(t *testing.T) {
	store := newFakeTransactionStore()
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tx, err := svc.Create(context.Background(), "uid1", dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Amount:   15,
		Category: "Entertainment",
		Date:     &past,
		Status:   models.TransactionStatusUpcoming,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Status != models.TransactionStatusCompleted {
		t.Errorf("expected past-dated upcoming to collapse to completed, got %s", tx.Status)
	}
	if len(ledger.applied) != 1 {
		t.Errorf("expected 1 ledger apply, got %d", len(ledger.applied))
	}
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	svc := NewTransactionService(newFakeTransactionStore(), &fakeLedger{})
	_, err := svc.Create(context.Background(), "uid1", dto.CreateTransactionRequest{
		Type:     "transfer",
		Amount:   10,
		Category: "Misc",
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	svc := NewTransactionService(newFakeTransactionStore(), &fakeLedger{})
	_, err := svc.Create(context.Background(), "uid1", dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Amount:   -5,
		Category: "Misc",
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

// --- Update tests ---

func TestUpdateTransaction_RevertsThenReapplies(t *testing.T) {
	store := newFakeTransactionStore()
	store.txs["tx1"] = &models.Transaction{
		TransactionID: "tx1",
		Type:          models.TransactionTypeExpense,
		Amount:        100,
		Category:      "Food",
		Status:        models.TransactionStatusCompleted,
	}
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)

	updated, err := svc.Update(context.Background(), "uid1", "tx1", dto.UpdateTransactionRequest{
		Amount: helpers.Ptr(150.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Amount != 150 {
		t.Errorf("expected amount 150, got %f", updated.Amount)
	}
	if len(ledger.reverted) != 1 || ledger.reverted[0].Amount != 100 {
		t.Fatalf("expected revert of the original amount, got %+v", ledger.reverted)
	}
	if len(ledger.applied) != 1 || ledger.applied[0].Amount != 150 {
		t.Fatalf("expected apply of the updated amount, got %+v", ledger.applied)
	}
}

func TestUpdateTransaction_ToUpcomingOnlyReverts(t *testing.T) {
	store := newFakeTransactionStore()
	store.txs["tx1"] = &models.Transaction{
		TransactionID: "tx1",
		Type:          models.TransactionTypeExpense,
		Amount:        100,
		Category:      "Food",
		Status:        models.TransactionStatusCompleted,
	}
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)

	_, err := svc.Update(context.Background(), "uid1", "tx1", dto.UpdateTransactionRequest{
		Status: helpers.Ptr(models.TransactionStatusUpcoming),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.reverted) != 1 {
		t.Errorf("expected 1 revert, got %d", len(ledger.reverted))
	}
	if len(ledger.applied) != 0 {
		t.Errorf("expected no applies, got %d", len(ledger.applied))
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc := NewTransactionService(newFakeTransactionStore(), &fakeLedger{})
	_, err := svc.Update(context.Background(), "uid1", "nonexistent", dto.UpdateTransactionRequest{})
	var nfe *errs.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

// --- Delete tests ---

func TestDeleteTransaction_RevertsCompleted(t *testing.T) {
	store := newFakeTransactionStore()
	store.txs["tx1"] = &models.Transaction{
		TransactionID: "tx1",
		Type:          models.TransactionTypeExpense,
		Amount:        25,
		Status:        models.TransactionStatusCompleted,
	}
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)

	if err := svc.Delete(context.Background(), "uid1", "tx1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, exists := store.txs["tx1"]; exists {
		t.Error("transaction should have been deleted")
	}
	if len(ledger.reverted) != 1 {
		t.Errorf("expected 1 revert, got %d", len(ledger.reverted))
	}
}

func TestDeleteTransaction_UpcomingSkipsLedger(t *testing.T) {
	store := newFakeTransactionStore()
	store.txs["tx1"] = &models.Transaction{
		TransactionID: "tx1",
		Type:          models.TransactionTypeExpense,
		Amount:        25,
		Status:        models.TransactionStatusUpcoming,
	}
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)

	if err := svc.Delete(context.Background(), "uid1", "tx1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.reverted) != 0 {
		t.Errorf("upcoming transaction must not be reverted, got %d", len(ledger.reverted))
	}
}

// --- PromoteDue tests ---

func TestPromoteDue_PromotesAndApplies(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	store := newFakeTransactionStore()
	store.txs["due"] = &models.Transaction{
		TransactionID: "due",
		Type:          models.TransactionTypeExpense,
		Amount:        15,
		Date:          now.AddDate(0, 0, -1),
		Status:        models.TransactionStatusUpcoming,
	}
	store.txs["future"] = &models.Transaction{
		TransactionID: "future",
		Type:          models.TransactionTypeExpense,
		Amount:        20,
		Date:          now.AddDate(0, 0, 10),
		Status:        models.TransactionStatusUpcoming,
	}
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)
	svc.now = func() time.Time { return now }

	if err := svc.PromoteDue(context.Background(), "uid1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.txs["due"].Status != models.TransactionStatusCompleted {
		t.Error("due transaction should have been promoted")
	}
	if store.txs["future"].Status != models.TransactionStatusUpcoming {
		t.Error("future transaction should have stayed upcoming")
	}
	if len(ledger.applied) != 1 || ledger.applied[0].TransactionID != "due" {
		t.Errorf("expected exactly the due transaction applied, got %+v", ledger.applied)
	}
}

func TestPromoteDue_SecondRunIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	store := newFakeTransactionStore()
	store.txs["due"] = &models.Transaction{
		TransactionID: "due",
		Type:          models.TransactionTypeExpense,
		Amount:        15,
		Date:          now.AddDate(0, 0, -1),
		Status:        models.TransactionStatusUpcoming,
	}
	ledger := &fakeLedger{}
	svc := NewTransactionService(store, ledger)
	svc.now = func() time.Time { return now }

	if err := svc.PromoteDue(context.Background(), "uid1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.PromoteDue(context.Background(), "uid1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.applied) != 1 {
		t.Errorf("second sweep must not re-apply, got %d applies", len(ledger.applied))
	}
}

func TestList_SweepsBeforeQuerying(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	store := newFakeTransactionStore()
	store.txs["due"] = &models.Transaction{
		TransactionID: "due",
		Type:          models.TransactionTypeExpense,
		Amount:        15,
		Date:          now.AddDate(0, 0, -1),
		Status:        models.TransactionStatusUpcoming,
	}
	svc := NewTransactionService(store, &fakeLedger{})
	svc.now = func() time.Time { return now }

	txs, err := svc.List(context.Background(), "uid1", dto.TransactionQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 || txs[0].Status != models.TransactionStatusCompleted {
		t.Errorf("expected the due transaction listed as completed, got %+v", txs)
	}
}
