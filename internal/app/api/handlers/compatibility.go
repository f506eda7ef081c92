package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/app/service/compatibility"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

type compatRequest struct {
	SignA string `json:"signA" binding:"required"`
	SignB string `json:"signB" binding:"required"`
}

// ApiCompatibility scores a pair of signs. The long-form premium text is
// only included for callers with an active entitlement; everyone gets the
// scores and preview.
func ApiCompatibility(svc *compatibility.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req compatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "signA and signB are required")
			return
		}

		pair, err := svc.Pair(c.Request.Context(), zodiac.Sign(req.SignA), zodiac.Sign(req.SignB))
		if errors.Is(err, compatibility.ErrInvalidSign) {
			response.InvalidSign(c)
			return
		}
		if err != nil {
			logctx.FromGin(c, log).Errorw("compatibility lookup failed", "err", err)
			response.ServerError(c, "Failed to calculate compatibility")
			return
		}

		body := gin.H{
			"signA":   req.SignA,
			"signB":   req.SignB,
			"overall": pair.OverallScore,
			"categories": gin.H{
				"love":       pair.LoveScore,
				"career":     pair.CareerScore,
				"friendship": pair.FriendshipScore,
			},
			"preview": pair.PreviewText,
		}
		if user := middleware.CurrentUser(c); user.PremiumActive() {
			body["premium_text"] = pair.PremiumText
		}
		c.JSON(http.StatusOK, body)
	}
}

func RegisterCompatibilityRoutes(r gin.IRouter, svc *compatibility.Service, accounts *account.Service, log *zap.SugaredLogger) {
	r.POST("/compat", middleware.OptionalAuthMiddleware(accounts), ApiCompatibility(svc, log))
}
