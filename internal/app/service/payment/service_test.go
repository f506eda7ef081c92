package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/internal/testutil"
	"github.com/salamene/horoscope-backend/pkg/config"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.RefreshSecret = "test-refresh"
	cfg.JWT.ExpireHours = 1
	cfg.JWT.RefreshHours = 1
	accounts := account.NewService(cfg, log, db)
	svc := NewService(log, db, nil, nil, accounts)
	require.NoError(t, svc.SeedPlans(context.Background()))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Username: "guest_cafebabe", Email: "guest_cafebabe@salamene.app"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestSeedPlans_Idempotent(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, svc.SeedPlans(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.PaymentPlan{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestProducts_OrderedByDuration(t *testing.T) {
	svc, _ := newTestService(t)
	pricing, products, err := svc.Products(context.Background(), "US")
	require.NoError(t, err)

	require.Equal(t, "US", pricing.Country)
	require.Equal(t, "USD", pricing.Currency)
	require.Len(t, products, 3)
	require.Equal(t, "weekly_plan", products[0].ID)
	require.Equal(t, "monthly_plan", products[1].ID)
	require.Equal(t, "yearly_plan", products[2].ID)
	require.Equal(t, 7, products[0].DurationDays)
	require.Equal(t, 365, products[2].DurationDays)
	require.Equal(t, "$2.49", products[0].DisplayPrice)
	require.Equal(t, "$5", products[1].DisplayPrice)
	require.Equal(t, "$49", products[2].DisplayPrice)
}

func TestCheckout_CreatesPendingTransaction(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	tx, err := svc.Checkout(context.Background(), user, "monthly", "EUR")
	require.NoError(t, err)
	require.Contains(t, tx.TransactionID, "tx_")
	require.Equal(t, models.TransactionStatusPending, tx.Status)
	require.Equal(t, 5.00, tx.Amount)
	require.Equal(t, "EUR", tx.Currency)
	require.Contains(t, tx.CheckoutURL, tx.TransactionID)

	var stored models.Transaction
	require.NoError(t, db.Where("transaction_id = ?", tx.TransactionID).First(&stored).Error)
	require.Equal(t, user.ID, stored.UserID)
}

func TestCheckout_AcceptsCatalogID(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	tx, err := svc.Checkout(context.Background(), user, "yearly_plan", "")
	require.NoError(t, err)
	require.Equal(t, 49.00, tx.Amount)
	require.Equal(t, "USD", tx.Currency)
}

func TestCheckout_UnknownPlan(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	_, err := svc.Checkout(context.Background(), user, "lifetime", "USD")
	require.ErrorIs(t, err, ErrInvalidPlan)
}

func TestApplyWebhook_PaidExtendsPremium(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)
	ctx := context.Background()

	tx, err := svc.Checkout(ctx, user, "monthly", "USD")
	require.NoError(t, err)

	require.NoError(t, svc.ApplyWebhook(ctx, tx.TransactionID, models.TransactionStatusPaid))

	var storedTx models.Transaction
	require.NoError(t, db.Where("transaction_id = ?", tx.TransactionID).First(&storedTx).Error)
	require.Equal(t, models.TransactionStatusPaid, storedTx.Status)
	require.NotNil(t, storedTx.PaidAt)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	require.True(t, storedUser.IsPremium)
	require.NotNil(t, storedUser.PremiumUntil)
	require.WithinDuration(t, time.Now().Add(30*24*time.Hour), *storedUser.PremiumUntil, time.Minute)
}

func TestApplyWebhook_PaidStacksOnActivePremium(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)
	ctx := context.Background()

	future := time.Now().Add(10 * 24 * time.Hour)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"is_premium":    true,
		"premium_until": future,
	}).Error)

	tx, err := svc.Checkout(ctx, user, "weekly", "USD")
	require.NoError(t, err)
	require.NoError(t, svc.ApplyWebhook(ctx, tx.TransactionID, models.TransactionStatusPaid))

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	require.WithinDuration(t, future.Add(7*24*time.Hour), *storedUser.PremiumUntil, time.Second)
}

func TestApplyWebhook_RedeliveryIsNoOp(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)
	ctx := context.Background()

	tx, err := svc.Checkout(ctx, user, "weekly", "USD")
	require.NoError(t, err)
	require.NoError(t, svc.ApplyWebhook(ctx, tx.TransactionID, models.TransactionStatusPaid))

	var afterFirst models.User
	require.NoError(t, db.First(&afterFirst, user.ID).Error)

	// Redelivered webhook must not extend the entitlement again.
	require.NoError(t, svc.ApplyWebhook(ctx, tx.TransactionID, models.TransactionStatusPaid))

	var afterSecond models.User
	require.NoError(t, db.First(&afterSecond, user.ID).Error)
	require.Equal(t, afterFirst.PremiumUntil.Unix(), afterSecond.PremiumUntil.Unix())
}

func TestApplyWebhook_FailedLeavesUserAlone(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)
	ctx := context.Background()

	tx, err := svc.Checkout(ctx, user, "monthly", "USD")
	require.NoError(t, err)
	require.NoError(t, svc.ApplyWebhook(ctx, tx.TransactionID, models.TransactionStatusFailed))

	var storedTx models.Transaction
	require.NoError(t, db.Where("transaction_id = ?", tx.TransactionID).First(&storedTx).Error)
	require.Equal(t, models.TransactionStatusFailed, storedTx.Status)
	require.Nil(t, storedTx.PaidAt)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	require.False(t, storedUser.IsPremium)
}

func TestApplyWebhook_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.ApplyWebhook(ctx, "tx_missing", models.TransactionStatusPaid)
	require.ErrorIs(t, err, ErrTransactionNotFound)

	err = svc.ApplyWebhook(ctx, "tx_whatever", models.TransactionStatus("refunded"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.ApplyWebhook(ctx, "tx_whatever", models.TransactionStatusPending)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPricingForCountry(t *testing.T) {
	cases := []struct {
		country  string
		currency string
		monthly  string
	}{
		{"US", "USD", "$5"},
		{"GE", "GEL", "₾5"},
		{"DE", "EUR", "€5"},
		{"FR", "EUR", "€5"},
		{"JP", "USD", "$5"},
	}
	for _, tc := range cases {
		pricing := PricingForCountry(tc.country)
		require.Equal(t, tc.currency, pricing.Currency, "country=%s", tc.country)
		require.Equal(t, tc.monthly, pricing.MonthlyDisplay, "country=%s", tc.country)
		require.Equal(t, 2.49, pricing.Plans[models.PlanTypeWeekly].Amount)
		require.Equal(t, 49.00, pricing.Plans[models.PlanTypeYearly].Amount)
	}
}

func TestDisplayPrice(t *testing.T) {
	require.Equal(t, "$2.49", displayPrice("$", 2.49))
	require.Equal(t, "$5", displayPrice("$", 5.00))
	require.Equal(t, "€49", displayPrice("€", 49.00))
}
