package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/platform/config"
	"github.com/expensly/expensly_backend/internal/utils"
)

const refreshTokenByteLength = 32

// tokenService implements the TokenSvcFacade interface.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepository
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token")
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token hash")
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid refresh token", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "account is deactivated", apperrors.ErrUnauthorized)
	}
	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid refresh token", apperrors.ErrUnauthorized)
	}
	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "refresh token has expired", apperrors.ErrRefreshTokenExpired)
	}
	return user, nil
}
