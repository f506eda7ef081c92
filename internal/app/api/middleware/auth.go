package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
	"github.com/salamene/horoscope-backend/pkg/token"
)

// UserKey is the gin.Context key under which the authenticated user is
// stored.
const UserKey = "user"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func attachUser(c *gin.Context, user *models.User) {
	c.Set(UserKey, user)
	ctx := logctx.WithUserID(c.Request.Context(), user.ID)
	if l, ok := c.Get(logctx.GinLoggerKey); ok {
		if lg, ok := l.(*zap.SugaredLogger); ok && lg != nil {
			scoped := lg.With("user_id", user.ID)
			c.Set(logctx.GinLoggerKey, scoped)
			ctx = logctx.WithLogger(ctx, scoped)
		}
	}
	c.Request = c.Request.WithContext(ctx)
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, account.ErrUserNotFound):
		return "User not found"
	default:
		return "Invalid token"
	}
}

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the resolved user to the context.
func AuthMiddleware(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.AuthFailed(c, "Authentication credentials were not provided")
			c.Abort()
			return
		}
		user, err := accounts.Authenticate(c.Request.Context(), raw)
		if err != nil {
			response.AuthFailed(c, authMessage(err))
			c.Abort()
			return
		}
		attachUser(c, user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid bearer token is
// present and lets anonymous or bad-token requests through unauthenticated.
func OptionalAuthMiddleware(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if user, err := accounts.Authenticate(c.Request.Context(), raw); err == nil {
				attachUser(c, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by the auth middleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
