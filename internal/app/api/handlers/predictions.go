package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/app/service/horoscope"
	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

// periodRoutes maps the route suffix to prediction type, query parameter
// name, and the format hint used in validation errors.
var periodRoutes = []struct {
	path       string
	ptype      models.PredictionType
	queryParam string
	formatHint string
}{
	{"daily", models.PredictionTypeDaily, "date", "YYYY-MM-DD"},
	{"weekly", models.PredictionTypeWeekly, "week", "YYYY-WXX"},
	{"monthly", models.PredictionTypeMonthly, "month", "YYYY-MM"},
	{"yearly", models.PredictionTypeYearly, "year", "YYYY"},
}

func dailyBody(p *models.Prediction) gin.H {
	return gin.H{
		"sign":         p.Sign,
		"date":         p.DateKey,
		"text":         p.Text,
		"lucky_number": p.LuckyNumber,
		"lucky_color":  p.LuckyColor,
		"mood":         p.Mood,
		"aspects": gin.H{
			"love":   p.LoveScore,
			"career": p.CareerScore,
			"health": p.HealthScore,
		},
	}
}

// extendedBody renders a weekly/monthly/yearly prediction. The text is
// withheld for callers without an active premium entitlement.
func extendedBody(p *models.Prediction, keyField string, premiumActive bool) gin.H {
	body := gin.H{
		"sign":    p.Sign,
		keyField:  p.DateKey,
		"premium": p.Premium,
	}
	if !p.Premium || premiumActive {
		body["text"] = p.Text
	}
	return body
}

// ApiPrediction serves one prediction period. Daily content is free;
// extended periods gate their text behind premium.
func ApiPrediction(svc *horoscope.Service, ptype models.PredictionType, queryParam, formatHint string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sign := zodiac.Sign(c.Query("sign"))
		dateKey := c.Query(queryParam)
		if sign == "" || dateKey == "" {
			response.InvalidData(c, "Sign and "+queryParam+" are required")
			return
		}

		p, err := svc.Prediction(c.Request.Context(), sign, ptype, dateKey)
		switch {
		case errors.Is(err, horoscope.ErrInvalidSign):
			response.InvalidSign(c)
			return
		case errors.Is(err, horoscope.ErrInvalidDateKey):
			response.InvalidData(c, "Invalid "+queryParam+" format. Use "+formatHint)
			return
		case err != nil:
			logctx.FromGin(c, log).Errorw("prediction lookup failed", "err", err)
			response.ServerError(c, "Failed to fetch prediction")
			return
		}

		if ptype == models.PredictionTypeDaily {
			c.JSON(http.StatusOK, dailyBody(p))
			return
		}
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, extendedBody(p, queryParam, user.PremiumActive()))
	}
}

// ApiBanners lists active promotional banners.
func ApiBanners(svc *horoscope.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := svc.Banners(c.Request.Context())
		if err != nil {
			logctx.FromGin(c, log).Errorw("banner listing failed", "err", err)
			response.ServerError(c, "Failed to fetch banners")
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

func RegisterPredictionRoutes(r gin.IRouter, svc *horoscope.Service, accounts *account.Service, log *zap.SugaredLogger) {
	optAuth := middleware.OptionalAuthMiddleware(accounts)
	for _, route := range periodRoutes {
		r.GET("/predictions/"+route.path, optAuth,
			ApiPrediction(svc, route.ptype, route.queryParam, route.formatHint, log))
	}
	r.GET("/banners", ApiBanners(svc, log))
}
