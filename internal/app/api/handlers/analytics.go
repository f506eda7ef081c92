package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/app/service/analytics"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
)

// ApiAnalyticsEvents ingests a batch of client events. Events fail
// independently; the response always reports success with the stored count.
func ApiAnalyticsEvents(svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var events []analytics.Event
		if err := c.ShouldBindJSON(&events); err != nil {
			response.InvalidData(c, "Events must be an array")
			return
		}

		var userID *uint
		if user := middleware.CurrentUser(c); user != nil {
			userID = &user.ID
		}
		processed := svc.Ingest(c.Request.Context(), events, userID,
			c.ClientIP(), c.Request.UserAgent())

		c.JSON(http.StatusOK, gin.H{"status": "success", "processed": processed})
	}
}

// ApiSessionSummary returns a session's aggregate metrics and recent events.
func ApiSessionSummary(svc *analytics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			response.InvalidData(c, "session_id is required")
			return
		}

		session, events, err := svc.Session(c.Request.Context(), sessionID)
		if errors.Is(err, analytics.ErrSessionNotFound) {
			response.NotFound(c, "Session not found")
			return
		}
		if err != nil {
			logctx.FromGin(c, log).Errorw("session summary failed", "err", err)
			response.ServerError(c, "Failed to get session summary")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"metrics": gin.H{
				"duration_seconds":           session.DurationSeconds,
				"screen_views":               session.ScreenViews,
				"tab_switches":               session.TabSwitches,
				"banner_clicks":              session.BannerClicks,
				"paywall_views":              session.PaywallViews,
				"compatibility_calculations": session.CompatibilityCalculations,
				"upgrade_attempts":           session.UpgradeAttempts,
				"purchase_attempts":          session.PurchaseAttempts,
				"successful_purchases":       session.SuccessfulPurchases,
			},
			"recent_events": events,
		})
	}
}

func RegisterAnalyticsRoutes(r gin.IRouter, svc *analytics.Service, accounts *account.Service, log *zap.SugaredLogger) {
	r.POST("/analytics/events", middleware.OptionalAuthMiddleware(accounts), ApiAnalyticsEvents(svc))
	r.GET("/analytics/session", ApiSessionSummary(svc, log))
}
