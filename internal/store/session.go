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

// tokenCipher protects refresh tokens at rest (KMS-backed in production).
type tokenCipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// sessionStore holds the single refresh-token document per user, keyed by
// uid. Login overwrites it, logout deletes it.
type sessionStore struct {
	client *firestore.Client
	cipher tokenCipher
}

func NewSessionStore(client *firestore.Client, cipher tokenCipher) *sessionStore {
	return &sessionStore{client: client, cipher: cipher}
}

func (s *sessionStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("sessions").Doc(uid)
}

func (s *sessionStore) Upsert(ctx context.Context, uid, refreshToken string) error {
	encrypted, err := s.cipher.Encrypt(ctx, refreshToken)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = s.doc(uid).Set(ctx, map[string]interface{}{
		"uid":          uid,
		"refreshToken": encrypted,
		"lastActive":   now,
		"updatedAt":    now,
	}, firestore.MergeAll)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save session", err)
	}
	return nil
}

// GetToken returns the decrypted refresh token for the user's session.
func (s *sessionStore) GetToken(ctx context.Context, uid string) (string, error) {
	doc, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", errs.NewNotFoundError("session not found")
		}
		return "", errs.NewDatabaseError("read", "failed to get session", err)
	}
	var session models.Session
	if err := doc.DataTo(&session); err != nil {
		return "", errs.NewDatabaseError("read", "failed to parse session data", err)
	}
	return s.cipher.Decrypt(ctx, session.RefreshToken)
}

func (s *sessionStore) Delete(ctx context.Context, uid string) error {
	_, err := s.doc(uid).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete session", err)
	}
	return nil
}
