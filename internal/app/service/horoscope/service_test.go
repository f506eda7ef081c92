package horoscope

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/internal/testutil"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(zap.NewNop().Sugar(), testutil.SetupTestDB(t))
}

func TestPrediction_DailyFieldsInRange(t *testing.T) {
	svc := newTestService(t)
	p, err := svc.Prediction(context.Background(), zodiac.Leo, models.PredictionTypeDaily, "2025-06-15")
	require.NoError(t, err)

	require.Equal(t, zodiac.Leo, p.Sign)
	require.NotEmpty(t, p.Text)
	require.False(t, strings.Contains(p.Text, "{sign}"))
	require.NotNil(t, p.LuckyNumber)
	require.GreaterOrEqual(t, *p.LuckyNumber, 1)
	require.LessOrEqual(t, *p.LuckyNumber, 50)
	require.NotEmpty(t, p.LuckyColor)
	require.NotEmpty(t, p.Mood)
	for _, score := range []*int{p.LoveScore, p.CareerScore, p.HealthScore} {
		require.NotNil(t, score)
		require.GreaterOrEqual(t, *score, 60)
		require.LessOrEqual(t, *score, 100)
	}
	require.False(t, p.Premium)
}

func TestPrediction_RepeatReadsAreIdentical(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Prediction(ctx, zodiac.Aries, models.PredictionTypeDaily, "2025-01-01")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Prediction(ctx, zodiac.Aries, models.PredictionTypeDaily, "2025-01-01")
		require.NoError(t, err)
		require.Equal(t, first.Text, again.Text)
		require.Equal(t, *first.LuckyNumber, *again.LuckyNumber)
		require.Equal(t, first.LuckyColor, again.LuckyColor)
		require.Equal(t, first.Mood, again.Mood)
	}

	var count int64
	require.NoError(t, svc.db.Model(&models.Prediction{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestPrediction_DistinctKeysDistinctRows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Prediction(ctx, zodiac.Aries, models.PredictionTypeDaily, "2025-01-01")
	require.NoError(t, err)
	_, err = svc.Prediction(ctx, zodiac.Aries, models.PredictionTypeDaily, "2025-01-02")
	require.NoError(t, err)
	_, err = svc.Prediction(ctx, zodiac.Taurus, models.PredictionTypeDaily, "2025-01-01")
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.db.Model(&models.Prediction{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestPrediction_ExtendedPeriodsArePremium(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		ptype   models.PredictionType
		dateKey string
	}{
		{models.PredictionTypeWeekly, "2025-W24"},
		{models.PredictionTypeMonthly, "2025-06"},
		{models.PredictionTypeYearly, "2025"},
	}
	for _, tc := range cases {
		p, err := svc.Prediction(ctx, zodiac.Virgo, tc.ptype, tc.dateKey)
		require.NoError(t, err, "type=%s", tc.ptype)
		require.True(t, p.Premium)
		require.NotEmpty(t, p.Text)
		require.Nil(t, p.LuckyNumber)
	}
}

func TestPrediction_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Prediction(ctx, "ophiuchus", models.PredictionTypeDaily, "2025-01-01")
	require.ErrorIs(t, err, ErrInvalidSign)

	_, err = svc.Prediction(ctx, zodiac.Leo, models.PredictionTypeDaily, "01-01-2025")
	require.ErrorIs(t, err, ErrInvalidDateKey)

	_, err = svc.Prediction(ctx, zodiac.Leo, models.PredictionTypeWeekly, "2025-06-15")
	require.ErrorIs(t, err, ErrInvalidDateKey)

	_, err = svc.Prediction(ctx, zodiac.Leo, models.PredictionTypeMonthly, "2025")
	require.ErrorIs(t, err, ErrInvalidDateKey)

	_, err = svc.Prediction(ctx, zodiac.Leo, models.PredictionTypeYearly, "25")
	require.ErrorIs(t, err, ErrInvalidDateKey)
}

func TestBanners_SeedsDefaultsOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	banners, err := svc.Banners(ctx)
	require.NoError(t, err)
	require.Len(t, banners, 4)

	ids := make([]string, 0, len(banners))
	for _, b := range banners {
		ids = append(ids, b.BannerID)
	}
	require.Contains(t, ids, "premium_weekly")
	require.Contains(t, ids, "compat_leo")

	// A second call serves the same rows without reseeding.
	again, err := svc.Banners(ctx)
	require.NoError(t, err)
	require.Len(t, again, 4)

	var count int64
	require.NoError(t, svc.db.Model(&models.Banner{}).Count(&count).Error)
	require.EqualValues(t, 4, count)
}

func TestBanners_SkipsInactive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Banners(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.db.Model(&models.Banner{}).
		Where("banner_id = ?", "compat_leo").
		Update("is_active", false).Error)

	banners, err := svc.Banners(ctx)
	require.NoError(t, err)
	require.Len(t, banners, 3)
}
