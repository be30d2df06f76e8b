package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
)

type fakeUserStore struct {
	users map[string]*models.User // keyed by uid
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.users[user.UID] = user
	return nil
}

func (f *fakeUserStore) Get(_ context.Context, uid string) (*models.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, errs.NewNotFoundError("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	f.users[user.UID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.NewNotFoundError("user not found")
}

func (f *fakeUserStore) GetByName(_ context.Context, name string) (*models.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, errs.NewNotFoundError("user not found")
}

type fakeSessionStore struct {
	tokens map[string]string // uid -> refresh token
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: make(map[string]string)}
}

func (f *fakeSessionStore) Upsert(_ context.Context, uid, refreshToken string) error {
	f.tokens[uid] = refreshToken
	return nil
}

func (f *fakeSessionStore) GetToken(_ context.Context, uid string) (string, error) {
	token, ok := f.tokens[uid]
	if !ok {
		return "", errs.NewNotFoundError("session not found")
	}
	return token, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, uid string) error {
	delete(f.tokens, uid)
	return nil
}

func newAuthService(users *fakeUserStore, sessions *fakeSessionStore) *authService {
	return NewAuthService(users, sessions, "access-secret", "refresh-secret")
}

func register(t *testing.T, svc *authService) dto.AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return result
}

// --- Register tests ---

func TestRegister_IssuesTokensAndSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newAuthService(users, sessions)

	result := register(t, svc)
	if result.User.ID == "" {
		t.Error("expected non-empty uid")
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected both tokens issued")
	}
	if sessions.tokens[result.User.ID] != result.RefreshToken {
		t.Error("refresh token should be stored in the session row")
	}
	stored := users.users[result.User.ID]
	if stored.PasswordHash == "hunter22" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	register(t, svc)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "alice2",
		Email:    "alice@example.com",
		Password: "pw",
	})
	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	register(t, svc)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "alice",
		Email:    "other@example.com",
		Password: "pw",
	})
	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.c"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

// --- Login tests ---

func TestLogin_OK(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newAuthService(newFakeUserStore(), sessions)
	registered := register(t, svc)

	result, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("expected the registered uid, got %s", result.User.ID)
	}
	if sessions.tokens[result.User.ID] != result.RefreshToken {
		t.Error("login should overwrite the session row with the new refresh token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	register(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %T: %v", err, err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "pw",
	})
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("unknown email must look like bad credentials, got %T: %v", err, err)
	}
}

// --- Refresh tests ---

func TestRefresh_OK(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	registered := register(t, svc)

	result, err := svc.Refresh(context.Background(), registered.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("expected a fresh access token")
	}
}

func TestRefresh_AfterLogout(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	registered := register(t, svc)

	if err := svc.Logout(context.Background(), registered.User.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	_, err := svc.Refresh(context.Background(), registered.RefreshToken)
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("refresh after logout must fail, got %T: %v", err, err)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %T: %v", err, err)
	}
}

func TestRefresh_SupersededToken(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	registered := register(t, svc)

	// A second login rotates the session row, so the old refresh token no
	// longer matches. Pin distinct clocks so the two tokens differ.
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	first := registered.RefreshToken
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC) }
	second, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first == second.RefreshToken {
		t.Fatal("expected a rotated refresh token")
	}

	_, err = svc.Refresh(context.Background(), first)
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("superseded token must be rejected, got %T: %v", err, err)
	}
}

// --- Profile / ChangePassword tests ---

func TestProfile_OK(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	registered := register(t, svc)

	profile, err := svc.Profile(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "alice" || profile.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestChangePassword_OK(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	registered := register(t, svc)

	err := svc.ChangePassword(context.Background(), registered.User.ID, dto.ChangePasswordRequest{
		OldPassword: "hunter22",
		NewPassword: "newpass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "newpass",
	}); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
}

func TestChangePassword_WrongOld(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeSessionStore())
	registered := register(t, svc)

	err := svc.ChangePassword(context.Background(), registered.User.ID, dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpass",
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
