package service

import (
	"context"
	"testing"
	"time"

	"nexusconnect-backend/auth"
	"nexusconnect-backend/models"
	"nexusconnect-backend/service/servicetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(users *servicetest.Users) (*AuthService, *auth.TokenManager) {
	tm := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour, nil)
	return NewAuthService(
		AuthWithUserStore(users),
		AuthWithTokenManager(tm),
		AuthWithBcryptCost(bcrypt.MinCost),
	), tm
}

func TestRegisterAndLogin(t *testing.T) {
	users := servicetest.NewUsers()
	svc, tm := newAuthService(users)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{
		Email:     "Awa@Example.com",
		Password:  "password123",
		FirstName: strPtr("Awa"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "awa@example.com", resp.User.Email)
	assert.False(t, resp.User.HasProfile)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := tm.Verify(ctx, resp.AccessToken)
	require.NoError(t, err)
	id, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.ID)

	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "awa@example.com", Password: "password456"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "awa@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.Equal(t, "Awa", *login.User.FirstName)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "awa@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, tm := newAuthService(servicetest.NewUsers())
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := tm.Verify(ctx, resp.RefreshToken, auth.TokenRefresh)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, claims)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Nil(t, refreshed.User)

	_, err = tm.Verify(ctx, refreshed.AccessToken)
	assert.NoError(t, err)
}

func TestMeUnknownAccount(t *testing.T) {
	svc, _ := newAuthService(servicetest.NewUsers())
	_, err := svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
