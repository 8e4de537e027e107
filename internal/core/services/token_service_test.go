package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/core/services"
	"github.com/expensly/expensly_backend/internal/platform/config"
	"github.com/expensly/expensly_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.TokenSvcFacade
	ctx          context.Context
	user         *domain.User
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTIssuer:                  "expensly-test",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	s.service = services.NewTokenService(cfg, s.mockUserRepo)
	s.ctx = context.Background()
	s.user = &domain.User{UserID: uuid.NewString(), Role: domain.RoleEmployee, IsActive: true}
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.ctx, s.user)

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret-key-that-is-long-enough")
	s.Require().NoError(err)
	s.Equal(s.user.UserID, claims.Subject)
	s.Equal(string(domain.RoleEmployee), claims.Role)
}

func (s *TokenServiceTestSuite) TestGenerateRefreshToken_StoresOnlyTheHash() {
	var storedHash string
	s.mockUserRepo.On("UpdateRefreshToken", s.ctx, s.user.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil).Once()

	raw, expiresAt, err := s.service.GenerateRefreshToken(s.ctx, s.user)

	s.Require().NoError(err)
	s.NotEmpty(raw)
	s.NotEqual(raw, storedHash, "the raw token must never be persisted")
	s.True(utils.CompareRefreshTokenHash(raw, storedHash))
	s.WithinDuration(time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	raw := "some-raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	s.user.RefreshTokenHash = utils.HashRefreshToken(raw)
	s.user.RefreshTokenExpiryTime = &expiry

	s.mockUserRepo.On("FindUserByID", s.ctx, s.user.UserID).Return(s.user, nil).Once()

	got, err := s.service.ValidateRefreshToken(s.ctx, s.user.UserID, raw)

	s.Require().NoError(err)
	s.Equal(s.user.UserID, got.UserID)
}

func (s *TokenServiceTestSuite) TestValidateRefreshToken_WrongToken() {
	expiry := time.Now().Add(time.Hour)
	s.user.RefreshTokenHash = utils.HashRefreshToken("the-real-token")
	s.user.RefreshTokenExpiryTime = &expiry

	s.mockUserRepo.On("FindUserByID", s.ctx, s.user.UserID).Return(s.user, nil).Once()

	got, err := s.service.ValidateRefreshToken(s.ctx, s.user.UserID, "a-forged-token")

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	raw := "some-raw-refresh-token"
	expiry := time.Now().Add(-time.Minute)
	s.user.RefreshTokenHash = utils.HashRefreshToken(raw)
	s.user.RefreshTokenExpiryTime = &expiry

	s.mockUserRepo.On("FindUserByID", s.ctx, s.user.UserID).Return(s.user, nil).Once()

	got, err := s.service.ValidateRefreshToken(s.ctx, s.user.UserID, raw)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (s *TokenServiceTestSuite) TestValidateRefreshToken_UnknownUser() {
	s.mockUserRepo.On("FindUserByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	got, err := s.service.ValidateRefreshToken(s.ctx, "missing", "whatever")

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestValidateRefreshToken_DeactivatedUser() {
	raw := "some-raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	s.user.IsActive = false
	s.user.RefreshTokenHash = utils.HashRefreshToken(raw)
	s.user.RefreshTokenExpiryTime = &expiry

	s.mockUserRepo.On("FindUserByID", s.ctx, s.user.UserID).Return(s.user, nil).Once()

	got, err := s.service.ValidateRefreshToken(s.ctx, s.user.UserID, raw)

	s.Require().Error(err)
	s.Nil(got)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}
