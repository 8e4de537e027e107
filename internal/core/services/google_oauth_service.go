package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/platform/config"
	"github.com/expensly/expensly_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const oauthStateByteLength = 16

// googleOAuthService implements the GoogleOAuthSvcFacade interface on top of
// the standard authorization-code flow with ID token verification.
type googleOAuthService struct {
	BaseService
	oauthConfig *oauth2.Config
}

// NewGoogleOAuthService creates a new Google OAuth service.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(oauthStateByteLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate OAuth state")
		return "", err
	}
	return state, nil
}

func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange authorization code")
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "failed to exchange authorization code", apperrors.ErrUnauthorized)
	}
	return token, nil
}

func (s *googleOAuthService) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "token response is missing an ID token", apperrors.ErrUnauthorized)
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.oauthConfig.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to validate Google ID token")
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid Google ID token", apperrors.ErrUnauthorized)
	}

	info := &domain.GoogleUserInfo{ProviderUserID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}

	if info.Email == "" {
		return nil, fmt.Errorf("google ID token payload has no email claim")
	}
	if !info.EmailVerified {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "google account email is not verified", apperrors.ErrUnauthorized)
	}
	return info, nil
}
