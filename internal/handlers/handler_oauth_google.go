package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/middleware"
	"github.com/expensly/expensly_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles the Google login flow.
type GoogleOAuthHandler struct {
	googleAuth   portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	auth         *AuthHandler
	cfg          *config.Config
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes. They stay inert
// unless a client ID is configured.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	if cfg.GoogleClientID == "" {
		return
	}
	h := &GoogleOAuthHandler{
		googleAuth:   services.GoogleAuth,
		userService:  services.User,
		tokenService: services.Token,
		auth:         NewAuthHandler(services, cfg),
		cfg:          cfg,
	}

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.Login)
		google.GET("/callback", h.Callback)
	}
}

// Login godoc
// @Summary Start Google login
// @Description Redirects the browser to Google's consent screen with a CSRF state cookie.
// @Tags auth
// @Success 307
// @Failure 500 {object} dto.APIError
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	state, err := h.googleAuth.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 300, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleAuth.GetGoogleLoginURL(c.Request.Context(), state))
}

// Callback godoc
// @Summary Complete Google login
// @Description Validates state and code, links the Google identity to an account and redirects to the frontend with an access token.
// @Tags auth
// @Success 307
// @Failure 401 {object} dto.APIError
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Invalid OAuth state", c.Request.URL.Path))
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Missing authorization code", c.Request.URL.Path))
		return
	}

	oauthToken, err := h.googleAuth.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	info, err := h.googleAuth.VerifyIDToken(c.Request.Context(), oauthToken)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.RegisterGoogleUser(c.Request.Context(), *info)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.auth.issueRefreshCookie(c, user); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Google login completed", slog.String("user_id", user.UserID))
	redirect := h.cfg.FrontendBaseURL + "/auth/callback#token=" + url.QueryEscape(token)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}
