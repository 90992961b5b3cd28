package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Traasa/SistemDekor-sub004/pkg/platform/sentinel"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so callers cannot probe which of the two failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore looks accounts up for login.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
}

// RevocationList invalidates issued tokens on logout.
type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service implements login and logout over the user store and token
// revocation list.
type Service struct {
	users  UserStore
	tokens *JWTService
	trl    RevocationList
	logger *slog.Logger
}

func NewService(users UserStore, tokens *JWTService, trl RevocationList, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, trl: trl, logger: logger}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return "", User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	ttl := s.tokens.TokenTTL()
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.trl.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether a token ID has been revoked by logout.
func (s *Service) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.trl.IsRevoked(ctx, jti)
}

// ParseToken validates a raw access token and returns its claims.
func (s *Service) ParseToken(token string) (*Claims, error) {
	return s.tokens.ValidateToken(token)
}

// Lookup returns the account behind an actor ID.
func (s *Service) Lookup(ctx context.Context, id int64) (User, error) {
	return s.users.FindByID(ctx, id)
}
