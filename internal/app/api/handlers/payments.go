package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/app/service/payment"
	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/response"
)

// ApiProducts lists purchasable plans priced for the caller's region.
func ApiProducts(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := svc.ResolveCountry(c.Request.Context(), c.GetHeader("X-Country-Code"), c.ClientIP())
		pricing, products, err := svc.Products(c.Request.Context(), country)
		if err != nil {
			logctx.FromGin(c, log).Errorw("product listing failed", "err", err)
			response.ServerError(c, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"country":         pricing.Country,
			"currency":        pricing.Currency,
			"pricing":         pricing.Plans,
			"monthly_display": pricing.MonthlyDisplay,
			"plans":           products,
		})
	}
}

type checkoutRequest struct {
	Plan     string `json:"plan" binding:"required"`
	Currency string `json:"currency"`
}

// ApiCheckout opens a pending transaction and hands back the provider
// checkout URL.
func ApiCheckout(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "Plan is required")
			return
		}

		user := middleware.CurrentUser(c)
		tx, err := svc.Checkout(c.Request.Context(), user, req.Plan, req.Currency)
		if errors.Is(err, payment.ErrInvalidPlan) {
			response.InvalidData(c, "Invalid plan")
			return
		}
		if err != nil {
			logctx.FromGin(c, log).Errorw("checkout failed", "err", err)
			response.ServerError(c, "Failed to create checkout session")
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout_url": tx.CheckoutURL})
	}
}

type webhookRequest struct {
	TxID     string `json:"tx_id"`
	Status   string `json:"status"`
	Plan     string `json:"plan"`
	Currency string `json:"currency"`
}

// ApiPaymentWebhook applies a provider-reported payment status. The caller
// is trusted infrastructure; there is no signature to verify.
func ApiPaymentWebhook(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req webhookRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.TxID == "" || req.Status == "" || req.Plan == "" {
			response.InvalidData(c, "Missing required webhook data")
			return
		}

		err := svc.ApplyWebhook(c.Request.Context(), req.TxID, models.TransactionStatus(req.Status))
		switch {
		case errors.Is(err, payment.ErrTransactionNotFound):
			response.InvalidData(c, "Transaction not found")
			return
		case errors.Is(err, payment.ErrInvalidStatus):
			response.InvalidData(c, "Invalid status")
			return
		case err != nil:
			logctx.FromGin(c, log).Errorw("webhook processing failed", "err", err)
			response.ServerError(c, "Failed to process webhook")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

type appleVerifyRequest struct {
	ReceiptData string `json:"receipt_data" binding:"required"`
	Plan        string `json:"plan" binding:"required"`
}

// ApiAppleVerify validates an App Store receipt and extends the caller's
// entitlement when Apple accepts it.
func ApiAppleVerify(svc *payment.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appleVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.InvalidData(c, "receipt_data and plan are required")
			return
		}

		user := middleware.CurrentUser(c)
		tx, err := svc.VerifyAppleReceipt(c.Request.Context(), user, req.ReceiptData, req.Plan)
		switch {
		case errors.Is(err, payment.ErrInvalidPlan):
			response.InvalidData(c, "Invalid plan")
			return
		case errors.Is(err, payment.ErrReceiptRejected):
			response.InvalidData(c, "Receipt rejected")
			return
		case err != nil:
			logctx.FromGin(c, log).Errorw("apple receipt verification failed", "err", err)
			response.ServerError(c, "Failed to verify receipt")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":         "success",
			"transaction_id": tx.TransactionID,
			"is_premium":     user.PremiumActive(),
		})
	}
}

func RegisterPaymentRoutes(r gin.IRouter, svc *payment.Service, accounts *account.Service, log *zap.SugaredLogger) {
	auth := middleware.AuthMiddleware(accounts)
	r.GET("/payments/products", ApiProducts(svc, log))
	r.POST("/payments/checkout", auth, ApiCheckout(svc, log))
	r.POST("/payments/webhook", ApiPaymentWebhook(svc, log))
	r.POST("/payments/apple/verify", auth, ApiAppleVerify(svc, log))
}
