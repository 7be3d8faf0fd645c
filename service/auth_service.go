package service

import (
	"context"
	"errors"
	"fmt"

	"nexusconnect-backend/auth"
	"nexusconnect-backend/models"
	"nexusconnect-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "bearer"

// AuthService registers users and issues their tokens
type AuthService struct {
	users  UserStore
	tokens *auth.TokenManager
	log    *zap.Logger
	cost   int
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// AuthWithUserStore sets the user store
func AuthWithUserStore(store UserStore) AuthServiceOption {
	return func(s *AuthService) {
		s.users = store
	}
}

// AuthWithTokenManager sets the token manager
func AuthWithTokenManager(tm *auth.TokenManager) AuthServiceOption {
	return func(s *AuthService) {
		s.tokens = tm
	}
}

// AuthWithLogger sets the logger
func AuthWithLogger(log *zap.Logger) AuthServiceOption {
	return func(s *AuthService) {
		s.log = log
	}
}

// AuthWithBcryptCost overrides the password hashing cost
func AuthWithBcryptCost(cost int) AuthServiceOption {
	return func(s *AuthService) {
		s.cost = cost
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		log:  zap.NewNop(),
		cost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the user and its account row, then signs it in
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if s.users == nil || s.tokens == nil {
		return nil, ErrServiceNotReady
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.users.Create(ctx, req.Email, string(hash), req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("Registration failed: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", account.ID.String()))
	return s.signIn(account)
}

// Login checks the password and signs the user in
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if s.users == nil || s.tokens == nil {
		return nil, ErrServiceNotReady
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("Login failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.Me(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.signIn(account)
}

// Me returns the account of userID
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	if s.users == nil {
		return nil, ErrServiceNotReady
	}
	account, err := s.users.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

// Logout revokes the presented token. Revocation failures are logged only;
// the client drops its token either way.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) {
	if s.tokens == nil {
		return
	}
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		s.log.Warn("failed to revoke token", zap.String("subject", claims.Subject), zap.Error(err))
	}
}

// Refresh issues a new token pair. A presented refresh token is rotated.
func (s *AuthService) Refresh(ctx context.Context, claims *auth.Claims) (*models.AuthResponse, error) {
	if s.tokens == nil {
		return nil, ErrServiceNotReady
	}

	id, err := claims.Identity()
	if err != nil {
		return nil, err
	}
	if claims.Type == auth.TokenRefresh {
		if err := s.tokens.Revoke(ctx, claims); err != nil {
			s.log.Warn("failed to revoke refresh token", zap.String("subject", claims.Subject), zap.Error(err))
		}
	}

	pair, err := s.tokens.Issue(id)
	if err != nil {
		return nil, err
	}
	return authResponse(pair, nil), nil
}

func (s *AuthService) signIn(account *models.Account) (*models.AuthResponse, error) {
	pair, err := s.tokens.Issue(auth.Identity{ID: account.ID, Email: account.Email})
	if err != nil {
		return nil, err
	}
	return authResponse(pair, account), nil
}

func authResponse(pair *auth.TokenPair, account *models.Account) *models.AuthResponse {
	return &models.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresAt:    pair.ExpiresAt.Unix(),
		User:         account,
	}
}
