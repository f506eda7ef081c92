package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
)

type signupRequest struct {
	Provider string `json:"provider" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// ApiSignup creates or resolves a user for a social provider token and
// returns a fresh token pair.
func ApiSignup(accounts *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "Invalid signup data")
			return
		}

		user, _, err := accounts.SignUp(c.Request.Context(), req.Provider, req.Token)
		if errors.Is(err, account.ErrInvalidProvider) {
			response.InvalidData(c, "Invalid signup data")
			return
		}
		if err != nil {
			logctx.FromGin(c, log).Errorw("signup failed", "err", err)
			response.ServerError(c, "Failed to create user")
			return
		}

		access, refresh, err := accounts.IssueTokens(user)
		if err != nil {
			logctx.FromGin(c, log).Errorw("token issuance failed", "err", err)
			response.ServerError(c, "Failed to create user")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"jwt":           access,
			"refresh_token": refresh,
			"user": gin.H{
				"id":         user.PublicID(),
				"is_premium": user.PremiumActive(),
			},
		})
	}
}

// ApiSocialAuth validates a provider token, logging the user in (and
// registering on first sign-in) and returning the full profile.
func ApiSocialAuth(accounts *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "Invalid social auth data")
			return
		}

		user, created, err := accounts.SignUp(c.Request.Context(), req.Provider, req.Token)
		if errors.Is(err, account.ErrInvalidProvider) {
			response.InvalidData(c, "Invalid social auth data")
			return
		}
		if err != nil {
			logctx.FromGin(c, log).Errorw("social auth failed", "err", err)
			response.ServerError(c, "Failed to authenticate")
			return
		}

		access, refresh, err := accounts.IssueTokens(user)
		if err != nil {
			logctx.FromGin(c, log).Errorw("token issuance failed", "err", err)
			response.ServerError(c, "Failed to authenticate")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"jwt":           access,
			"refresh_token": refresh,
			"created":       created,
			"user":          profileBody(user),
		})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ApiRefreshToken exchanges a valid refresh token for a new access token.
func ApiRefreshToken(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "refresh_token is required")
			return
		}

		user, err := accounts.AuthenticateRefresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			response.AuthFailed(c, "Invalid refresh token")
			return
		}

		access, _, err := accounts.IssueTokens(user)
		if err != nil {
			response.ServerError(c, "Failed to refresh token")
			return
		}
		c.JSON(http.StatusOK, gin.H{"jwt": access})
	}
}

// ApiLogout acknowledges a logout. Tokens are stateless, so the client just
// discards them.
func ApiLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func RegisterAuthRoutes(r gin.IRouter, accounts *account.Service, log *zap.SugaredLogger) {
	r.POST("/auth/signup", ApiSignup(accounts, log))
	r.POST("/auth/social", ApiSocialAuth(accounts, log))
	r.POST("/auth/refresh", ApiRefreshToken(accounts))
	r.POST("/auth/logout", middleware.AuthMiddleware(accounts), ApiLogout())
}
