package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Traasa/SistemDekor-sub004/internal/auth"
	"github.com/Traasa/SistemDekor-sub004/internal/auth/store/revocation"
	"github.com/Traasa/SistemDekor-sub004/internal/auth/store/user"
)

func newTestService(t *testing.T) (*auth.Service, auth.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := user.NewInMemoryStore()
	rina := users.Seed(auth.User{
		Name:         "Rina",
		Email:        "rina@example.com",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	tokens := auth.NewJWTService("test-signing-key", "sistemdekor", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, tokens, revocation.NewMemoryTRL(), logger), rina
}

func TestLogin(t *testing.T) {
	svc, rina := newTestService(t)
	ctx := context.Background()

	token, u, err := svc.Login(ctx, "rina@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, rina.ID, u.ID)
	assert.Equal(t, "Rina", u.Name)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, rina.ID, claims.UserID)
	assert.Equal(t, "Rina", claims.Name)
	assert.NotEmpty(t, claims.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Wrong password and unknown email must be indistinguishable.
	_, _, wrongPassword := svc.Login(ctx, "rina@example.com", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "correct horse")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "rina@example.com", "correct horse")
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)

	revoked, err := svc.IsTokenRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err = svc.IsTokenRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestParseToken_RejectsTampered(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "rina@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.ParseToken(token + "x")
	assert.Error(t, err)

	other := auth.NewJWTService("other-signing-key", "sistemdekor", time.Hour)
	foreign, err := other.GenerateAccessToken(auth.User{ID: 99, Name: "Mallory"})
	require.NoError(t, err)

	_, err = svc.ParseToken(foreign)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	svc, rina := newTestService(t)
	ctx := context.Background()

	u, err := svc.Lookup(ctx, rina.ID)
	require.NoError(t, err)
	assert.Equal(t, "rina@example.com", u.Email)

	_, err = svc.Lookup(ctx, 404)
	assert.Error(t, err)
}
