package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/internal/platform/appleiap"
	"github.com/salamene/horoscope-backend/internal/platform/geoip"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/tool"
)

var (
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidStatus       = errors.New("invalid transaction status")
	ErrReceiptRejected     = errors.New("receipt rejected by provider")
)

// planIDByType maps the short plan aliases clients send to catalog ids.
var planIDByType = map[string]string{
	"weekly":  "weekly_plan",
	"monthly": "monthly_plan",
	"yearly":  "yearly_plan",
}

// Service owns the payment catalog, checkout sessions, and the entitlement
// side effects of provider callbacks.
type Service struct {
	log      *zap.SugaredLogger
	db       *gorm.DB
	geoip    *geoip.Client
	verifier *appleiap.Verifier
	accounts *account.Service
}

func NewService(log *zap.SugaredLogger, db *gorm.DB, geo *geoip.Client, verifier *appleiap.Verifier, accounts *account.Service) *Service {
	return &Service{log: log, db: db, geoip: geo, verifier: verifier, accounts: accounts}
}

// SeedPlans inserts the static plan catalog, skipping rows that already
// exist. Run once at startup.
func (s *Service) SeedPlans(ctx context.Context) error {
	plans := []models.PaymentPlan{
		{
			PlanID: "weekly_plan", Name: "Weekly Premium",
			PlanType: models.PlanTypeWeekly, DurationDays: 7,
			PriceUSD: 2.49, PriceEUR: 2.49, PriceGEL: 2.49, IsActive: true,
		},
		{
			PlanID: "monthly_plan", Name: "Monthly Premium",
			PlanType: models.PlanTypeMonthly, DurationDays: 30,
			PriceUSD: 5.00, PriceEUR: 5.00, PriceGEL: 5.00, IsActive: true,
		},
		{
			PlanID: "yearly_plan", Name: "Yearly Premium",
			PlanType: models.PlanTypeYearly, DurationDays: 365,
			PriceUSD: 49.00, PriceEUR: 49.00, PriceGEL: 49.00, IsActive: true,
		},
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_id"}},
		DoNothing: true,
	}).Create(&plans)
	if res.Error != nil {
		return fmt.Errorf("failed to seed payment plans: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.log.Infow("payment plans seeded", "count", res.RowsAffected)
	}
	return nil
}

// Product is one purchasable plan with its regional price attached.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         models.PlanType `json:"type"`
	DurationDays int             `json:"duration_days"`
	Price        float64         `json:"price"`
	Currency     string          `json:"currency"`
	DisplayPrice string          `json:"display_price"`
}

// Products returns the active plan catalog priced for the given country,
// shortest duration first.
func (s *Service) Products(ctx context.Context, country string) (Pricing, []Product, error) {
	pricing := PricingForCountry(country)

	var plans []models.PaymentPlan
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("duration_days").
		Find(&plans).Error; err != nil {
		return Pricing{}, nil, fmt.Errorf("failed to fetch plans: %w", err)
	}

	products := make([]Product, 0, len(plans))
	for _, plan := range plans {
		price := pricing.Plans[plan.PlanType]
		products = append(products, Product{
			ID:           plan.PlanID,
			Name:         plan.Name,
			Type:         plan.PlanType,
			DurationDays: plan.DurationDays,
			Price:        price.Amount,
			Currency:     price.Currency,
			DisplayPrice: price.Display,
		})
	}
	return pricing, products, nil
}

// Checkout opens a pending transaction for the plan and returns its checkout
// URL. plan accepts either the catalog id or the short type alias.
func (s *Service) Checkout(ctx context.Context, user *models.User, plan, currency string) (*models.Transaction, error) {
	planID := plan
	if mapped, ok := planIDByType[plan]; ok {
		planID = mapped
	}

	var paymentPlan models.PaymentPlan
	err := s.db.WithContext(ctx).
		Where("plan_id = ? AND is_active = ?", planID, true).
		First(&paymentPlan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidPlan
	}
	if err != nil {
		return nil, err
	}

	if currency == "" {
		currency = "USD"
	}
	tx := &models.Transaction{
		TransactionID: tool.GenerateTransactionID(),
		UserID:        user.ID,
		PlanID:        paymentPlan.ID,
		Amount:        PriceForPlan(paymentPlan.PlanType, currency),
		Currency:      currency,
		Status:        models.TransactionStatusPending,
	}
	tx.CheckoutURL = fmt.Sprintf("https://flitt.io/pay/%s", tx.TransactionID)

	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("checkout created",
		"transaction_id", tx.TransactionID, "user_id", user.ID, "plan", paymentPlan.PlanID)
	return tx, nil
}

var webhookStatuses = map[models.TransactionStatus]bool{
	models.TransactionStatusPaid:      true,
	models.TransactionStatusFailed:    true,
	models.TransactionStatusCancelled: true,
}

// ApplyWebhook applies a provider-reported terminal status to a transaction.
// Transitions are one-way from pending; a redelivered webhook for an already
// settled transaction is a no-op, so entitlement is never extended twice for
// the same payment.
func (s *Service) ApplyWebhook(ctx context.Context, transactionID string, status models.TransactionStatus) error {
	if !webhookStatuses[status] {
		return ErrInvalidStatus
	}

	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var tx models.Transaction
		err := dbtx.Preload("User").Preload("Plan").
			Where("transaction_id = ?", transactionID).
			First(&tx).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}

		if tx.Status != models.TransactionStatusPending {
			logctx.FromCtx(ctx, s.log).Infow("webhook ignored for settled transaction",
				"transaction_id", transactionID, "status", tx.Status)
			return nil
		}

		updates := map[string]interface{}{"status": status}
		if status == models.TransactionStatusPaid {
			now := time.Now()
			updates["paid_at"] = now
		}
		if err := dbtx.Model(&tx).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		if status == models.TransactionStatusPaid {
			if err := s.accounts.ExtendPremium(ctx, dbtx, &tx.User, &tx.Plan); err != nil {
				return err
			}
		}
		logctx.FromCtx(ctx, s.log).Infow("webhook applied",
			"transaction_id", transactionID, "status", status)
		return nil
	})
}

// VerifyAppleReceipt validates an App Store receipt and, when Apple accepts
// it, records a paid transaction and extends the user's entitlement.
func (s *Service) VerifyAppleReceipt(ctx context.Context, user *models.User, receiptData, plan string) (*models.Transaction, error) {
	planID := plan
	if mapped, ok := planIDByType[plan]; ok {
		planID = mapped
	}
	var paymentPlan models.PaymentPlan
	err := s.db.WithContext(ctx).
		Where("plan_id = ? AND is_active = ?", planID, true).
		First(&paymentPlan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidPlan
	}
	if err != nil {
		return nil, err
	}

	receipt, err := s.verifier.Verify(ctx, receiptData)
	if err != nil {
		return nil, err
	}
	if receipt.Status != 0 {
		logctx.FromCtx(ctx, s.log).Warnw("apple receipt rejected",
			"user_id", user.ID, "status", receipt.Status)
		return nil, ErrReceiptRejected
	}

	providerTxID := ""
	if len(receipt.LatestReceiptInfo) > 0 {
		providerTxID = receipt.LatestReceiptInfo[0].TransactionID
	}

	now := time.Now()
	tx := &models.Transaction{
		TransactionID:         tool.GenerateTransactionID(),
		UserID:                user.ID,
		PlanID:                paymentPlan.ID,
		Amount:                PriceForPlan(paymentPlan.PlanType, "USD"),
		Currency:              "USD",
		Status:                models.TransactionStatusPaid,
		ProviderTransactionID: providerTxID,
		PaidAt:                &now,
	}
	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(tx).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return s.accounts.ExtendPremium(ctx, dbtx, user, &paymentPlan)
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("apple receipt verified",
		"user_id", user.ID, "transaction_id", tx.TransactionID, "provider_tx", providerTxID)
	return tx, nil
}
