package services

import (
	"context"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"golang.org/x/oauth2"
)

// TokenSvcFacade defines operations for issuing and validating tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a JWT access token for the user, returning
	// the token and its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a raw refresh token and its expiry. The
	// caller is responsible for persisting only its hash.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a raw refresh token against the stored hash
	// for the user, returning the user when valid.
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade defines the Google login flow.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// VerifyIDToken validates the ID token in the exchanged token and returns
	// the Google identity it asserts.
	VerifyIDToken(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
}
