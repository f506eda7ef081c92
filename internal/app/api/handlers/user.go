package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

const birthDateLayout = "2006-01-02"

// profileBody is the client-facing profile shape shared by /me and the
// social auth response.
func profileBody(user *models.User) gin.H {
	body := gin.H{
		"id":             user.PublicID(),
		"sign":           user.Sign,
		"birth_time":     user.BirthTime,
		"birth_place":    user.BirthPlace,
		"druid_sign":     user.DruidSign,
		"chinese_animal": user.ChineseAnimal,
		"is_premium":     user.PremiumActive(),
	}
	if user.BirthDate != nil {
		body["birth_date"] = user.BirthDate.Format(birthDateLayout)
	}
	if user.PremiumUntil != nil {
		body["premium_until"] = user.PremiumUntil.Format(birthDateLayout)
	}
	return body
}

// ApiGetProfile returns the authenticated user's profile.
func ApiGetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, profileBody(user))
	}
}

type profileUpdateRequest struct {
	Sign       *string `json:"sign"`
	BirthDate  *string `json:"birth_date"`
	BirthTime  *string `json:"birth_time"`
	BirthPlace *string `json:"birth_place"`
}

func (r *profileUpdateRequest) toUpdate() (account.ProfileUpdate, bool) {
	var upd account.ProfileUpdate
	if r.Sign != nil {
		sign := zodiac.Sign(*r.Sign)
		if !zodiac.Valid(sign) {
			return upd, false
		}
		upd.Sign = &sign
	}
	if r.BirthDate != nil {
		date, err := time.Parse(birthDateLayout, *r.BirthDate)
		if err != nil {
			return upd, false
		}
		upd.BirthDate = &date
	}
	upd.BirthTime = r.BirthTime
	upd.BirthPlace = r.BirthPlace
	return upd, true
}

// ApiUpdateProfile applies a partial profile update. Changing the birth date
// recomputes the derived signs.
func ApiUpdateProfile(accounts *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "Invalid update data")
			return
		}
		upd, ok := req.toUpdate()
		if !ok {
			response.InvalidData(c, "Invalid update data")
			return
		}

		user := middleware.CurrentUser(c)
		if err := accounts.UpdateProfile(c.Request.Context(), user, upd); err != nil {
			logctx.FromGin(c, log).Errorw("profile update failed", "err", err)
			response.ServerError(c, "Failed to update user profile")
			return
		}
		c.JSON(http.StatusOK, profileBody(user))
	}
}

// ApiCompleteOnboarding stores birth data collected during onboarding and
// marks the user onboarded.
func ApiCompleteOnboarding(accounts *account.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "Invalid onboarding data")
			return
		}
		upd, ok := req.toUpdate()
		if !ok {
			response.InvalidData(c, "Invalid onboarding data")
			return
		}
		if upd.BirthDate == nil {
			response.InvalidData(c, "birth_date is required")
			return
		}

		user := middleware.CurrentUser(c)
		if err := accounts.CompleteOnboarding(c.Request.Context(), user, upd); err != nil {
			logctx.FromGin(c, log).Errorw("onboarding failed", "err", err)
			response.ServerError(c, "Failed to complete onboarding")
			return
		}
		c.JSON(http.StatusOK, profileBody(user))
	}
}

func RegisterUserRoutes(r gin.IRouter, accounts *account.Service, log *zap.SugaredLogger) {
	auth := middleware.AuthMiddleware(accounts)
	r.GET("/me", auth, ApiGetProfile())
	r.PATCH("/me", auth, ApiUpdateProfile(accounts, log))
	r.POST("/me/onboarding", auth, ApiCompleteOnboarding(accounts, log))
}
