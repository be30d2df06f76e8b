package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/programmableapple/financialAdvisor/internal/dto"
	"github.com/programmableapple/financialAdvisor/internal/errs"
	"github.com/programmableapple/financialAdvisor/internal/models"
	"github.com/programmableapple/financialAdvisor/pkg/logger"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	bcryptCost      = 10
)

// authUserStore is the user storage interface for authentication.
type authUserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, uid string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
}

// authSessionStore holds the single refresh-token row per user.
type authSessionStore interface {
	Upsert(ctx context.Context, uid, refreshToken string) error
	GetToken(ctx context.Context, uid string) (string, error)
	Delete(ctx context.Context, uid string) error
}

type authService struct {
	users         authUserStore
	sessions      authSessionStore
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewAuthService(users authUserStore, sessions authSessionStore, accessSecret, refreshSecret string) *authService {
	return &authService{
		users:         users,
		sessions:      sessions,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResult, error) {
	var result dto.AuthResult
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return result, errs.NewValidationError("name, email and password are required")
	}

	if err := s.ensureUnique(ctx, func() (*models.User, error) { return s.users.GetByEmail(ctx, req.Email) }, "email already in use"); err != nil {
		return result, err
	}
	if err := s.ensureUnique(ctx, func() (*models.User, error) { return s.users.GetByName(ctx, req.Name) }, "name already in use"); err != nil {
		return result, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return result, err
	}

	user := &models.User{
		UID:          uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return result, err
	}

	logger.FromContext(ctx).Info("new user registered", "uid", user.UID)
	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResult, error) {
	var result dto.AuthResult

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return result, errs.NewUnauthorizedError("invalid credentials")
		}
		return result, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		logger.FromContext(ctx).Warn("login failed: incorrect password", "uid", user.UID)
		return result, errs.NewUnauthorizedError("invalid credentials")
	}

	logger.FromContext(ctx).Info("user logged in", "uid", user.UID)
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, uid string) error {
	return s.sessions.Delete(ctx, uid)
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented token must also match the stored session row, so a logout
// invalidates outstanding refresh tokens.
func (s *authService) Refresh(ctx context.Context, token string) (dto.RefreshTokenResult, error) {
	var result dto.RefreshTokenResult
	if token == "" {
		return result, errs.NewUnauthorizedError("refresh token required")
	}

	claims, err := s.parseToken(token, s.refreshSecret)
	if err != nil {
		return result, errs.NewUnauthorizedError("invalid refresh token")
	}
	uid, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if uid == "" {
		return result, errs.NewUnauthorizedError("invalid refresh token")
	}

	stored, err := s.sessions.GetToken(ctx, uid)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return result, errs.NewUnauthorizedError("session expired")
		}
		return result, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return result, errs.NewUnauthorizedError("invalid refresh token")
	}

	access, err := s.signToken(uid, name, s.accessSecret, accessTokenTTL)
	if err != nil {
		return result, err
	}
	result.AccessToken = access
	return result, nil
}

func (s *authService) Profile(ctx context.Context, uid string) (dto.ProfileResult, error) {
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		return dto.ProfileResult{}, err
	}
	return dto.ProfileResult{
		ID:        user.UID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, uid string, req dto.ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return errs.NewValidationError("new password is required")
	}
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return errs.NewValidationError("incorrect old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("password changed", "uid", uid)
	return nil
}

// --- Token helpers ---

func (s *authService) issueTokens(ctx context.Context, user *models.User) (dto.AuthResult, error) {
	var result dto.AuthResult

	access, err := s.signToken(user.UID, user.Name, s.accessSecret, accessTokenTTL)
	if err != nil {
		return result, err
	}
	refresh, err := s.signToken(user.UID, user.Name, s.refreshSecret, refreshTokenTTL)
	if err != nil {
		return result, err
	}

	// Single session row per user; a new login overwrites the old one.
	if err := s.sessions.Upsert(ctx, user.UID, refresh); err != nil {
		return result, err
	}

	result.User = dto.UserInfo{ID: user.UID, Name: user.Name, Email: user.Email}
	result.AccessToken = access
	result.RefreshToken = refresh
	return result, nil
}

func (s *authService) signToken(uid, name string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uid,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func (s *authService) parseToken(tokenStr string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *authService) ensureUnique(_ context.Context, lookup func() (*models.User, error), message string) error {
	_, err := lookup()
	if err == nil {
		return errs.NewAlreadyExistsError(message)
	}
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return nil
	}
	return err
}
