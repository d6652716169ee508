package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/domain"
	"github.com/shopward/commerce-api/internal/dto"
	"github.com/shopward/commerce-api/internal/repository"
	"github.com/shopward/commerce-api/internal/utils"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	tokens     *auth.TokenManager
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	tokens *auth.TokenManager,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register registers a new user and issues a session for it.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*Session, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, ErrWeakPassword
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        utils.SanitizeEmail(req.Email),
		PasswordHash: passwordHash,
		FullName:     req.FullName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(ctx, user.ID)
}

// Login authenticates a user and issues a session.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user.ID)
}

// Refresh validates the presented refresh token and mints a new access
// token. Order matters: the store lookup runs first so a revoked token is
// rejected regardless of its cryptographic state, then the token's own
// signature and expiry are checked, which also rejects rows that outlived
// the embedded expiry (expired rows are never purged).
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	row, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRefreshForbidden
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrRefreshForbidden
	}

	if row.UserID != userID || row.Expired() {
		return "", ErrRefreshForbidden
	}

	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout deletes every refresh token row the user holds. The tokens remain
// cryptographically valid until their embedded expiry, revocation is purely
// the absence of the row.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// OAuthLogin resolves the asserted identity to a local user, creating one
// if needed, and issues a session.
func (s *authService) OAuthLogin(ctx context.Context, identity domain.ExternalIdentity) (*Session, error) {
	if identity.Email == "" {
		return nil, fmt.Errorf("provider %s asserted no email", identity.Provider)
	}

	identity.Email = utils.SanitizeEmail(identity.Email)

	userID, err := s.userRepo.ResolveOAuth(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s identity: %w", identity.Provider, err)
	}

	return s.issueSession(ctx, userID)
}

// issueSession generates both tokens and persists the refresh token row.
// A failed write aborts the whole operation: an unpersisted refresh token
// could never be validated later, so issuing its cookie anyway would hand
// the client a credential that silently dies with the access token.
func (s *authService) issueSession(ctx context.Context, userID string) (*Session, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	row := &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTokenExpiry()),
	}

	if err := s.tokenRepo.Create(ctx, row); err != nil {
		s.logger.Error("failed to persist refresh token", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &Session{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
