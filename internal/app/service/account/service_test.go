package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/internal/testutil"
	"github.com/salamene/horoscope-backend/pkg/config"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.ExpireHours = 1
	cfg.JWT.RefreshHours = 24 * 7
	return NewService(cfg, zap.NewNop().Sugar(), testutil.SetupTestDB(t))
}

func TestSignUp_CreatesThenResolvesSameUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, created, err := svc.SignUp(ctx, "google", "provider-token-abc")
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, user.ID)
	require.Contains(t, user.Username, "google_")
	require.Equal(t, models.SubscriptionStatusNone, user.SubscriptionStatus)

	again, created, err := svc.SignUp(ctx, "google", "provider-token-abc")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, user.ID, again.ID)
}

func TestSignUp_TruncatesLongProviderTokens(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	first, created, err := svc.SignUp(ctx, "apple", string(long))
	require.NoError(t, err)
	require.True(t, created)

	// Same 50-char prefix resolves to the same identity.
	second, created, err := svc.SignUp(ctx, "apple", string(long[:50])+"different-suffix")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
}

func TestSignUp_RejectsUnknownProvider(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.SignUp(context.Background(), "myspace", "tok")
	require.ErrorIs(t, err, ErrInvalidProvider)
}

func TestSignUp_DistinctProvidersDistinctUsers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, _, err := svc.SignUp(ctx, "google", "same-token")
	require.NoError(t, err)
	b, _, err := svc.SignUp(ctx, "facebook", "same-token")
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestAuthenticate_ResolvesUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-1")
	require.NoError(t, err)

	access, refresh, err := svc.IssueTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, refresh)

	got, err := svc.Authenticate(ctx, access)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	viaRefresh, err := svc.AuthenticateRefresh(ctx, refresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, viaRefresh.ID)

	// Access tokens are not refresh tokens.
	_, err = svc.AuthenticateRefresh(ctx, access)
	require.Error(t, err)
}

func TestAuthenticate_DanglingUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-2")
	require.NoError(t, err)
	access, _, err := svc.IssueTokens(user)
	require.NoError(t, err)

	require.NoError(t, svc.db.Delete(&models.User{}, user.ID).Error)

	_, err = svc.Authenticate(ctx, access)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshPremiumStatus_ExpiresLazily(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-3")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, svc.db.Model(user).Updates(map[string]interface{}{
		"is_premium":          true,
		"premium_until":       past,
		"subscription_status": models.SubscriptionStatusActive,
	}).Error)
	user.IsPremium = true
	user.PremiumUntil = &past
	user.SubscriptionStatus = models.SubscriptionStatusActive

	require.NoError(t, svc.RefreshPremiumStatus(ctx, user))
	require.False(t, user.IsPremium)
	require.Equal(t, models.SubscriptionStatusExpired, user.SubscriptionStatus)

	var stored models.User
	require.NoError(t, svc.db.First(&stored, user.ID).Error)
	require.False(t, stored.IsPremium)
	require.Equal(t, models.SubscriptionStatusExpired, stored.SubscriptionStatus)
}

func TestRefreshPremiumStatus_FutureWindowUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-4")
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	user.IsPremium = true
	user.PremiumUntil = &future
	user.SubscriptionStatus = models.SubscriptionStatusActive

	require.NoError(t, svc.RefreshPremiumStatus(ctx, user))
	require.True(t, user.IsPremium)
	require.Equal(t, models.SubscriptionStatusActive, user.SubscriptionStatus)
}

func TestExtendPremium_StacksOnRunningWindow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-5")
	require.NoError(t, err)

	plan := &models.PaymentPlan{PlanType: models.PlanTypeMonthly, DurationDays: 30}
	future := time.Now().Add(48 * time.Hour)
	user.IsPremium = true
	user.PremiumUntil = &future

	require.NoError(t, svc.ExtendPremium(ctx, svc.db, user, plan))
	require.WithinDuration(t, future.Add(plan.Duration()), *user.PremiumUntil, time.Second)
	require.Equal(t, models.SubscriptionStatusActive, user.SubscriptionStatus)
	require.Equal(t, "monthly", user.SubscriptionPlan)
}

func TestExtendPremium_RestartsAfterLapse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-6")
	require.NoError(t, err)

	plan := &models.PaymentPlan{PlanType: models.PlanTypeWeekly, DurationDays: 7}
	past := time.Now().Add(-time.Hour)
	user.PremiumUntil = &past

	require.NoError(t, svc.ExtendPremium(ctx, svc.db, user, plan))
	require.WithinDuration(t, time.Now().Add(plan.Duration()), *user.PremiumUntil, time.Second)
	require.True(t, user.IsPremium)
}

func TestCompleteOnboarding_DerivesSigns(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-7")
	require.NoError(t, err)

	birth := time.Date(1996, 8, 10, 0, 0, 0, 0, time.UTC)
	place := "Tbilisi"
	require.NoError(t, svc.CompleteOnboarding(ctx, user, ProfileUpdate{
		BirthDate:  &birth,
		BirthPlace: &place,
	}))

	require.True(t, user.OnboardingDone)
	require.Equal(t, zodiac.Leo, user.Sign)
	require.Equal(t, "hazel", user.DruidSign)
	require.Equal(t, "rat", user.ChineseAnimal)

	var stored models.User
	require.NoError(t, svc.db.First(&stored, user.ID).Error)
	require.True(t, stored.OnboardingDone)
	require.Equal(t, zodiac.Leo, stored.Sign)
}

func TestUpdateProfile_ExplicitSignWins(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.SignUp(ctx, "guest", "tok-8")
	require.NoError(t, err)

	birth := time.Date(1990, 3, 25, 0, 0, 0, 0, time.UTC)
	sign := zodiac.Pisces
	require.NoError(t, svc.UpdateProfile(ctx, user, ProfileUpdate{
		BirthDate: &birth,
		Sign:      &sign,
	}))

	// The explicit sign is kept even though the date says aries.
	require.Equal(t, zodiac.Pisces, user.Sign)
	require.NotEmpty(t, user.DruidSign)
}
