package compatibility

import (
	"context"
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

func TestPair_OrderDoesNotMatter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ab, err := svc.Pair(ctx, zodiac.Leo, zodiac.Aries)
	require.NoError(t, err)
	ba, err := svc.Pair(ctx, zodiac.Aries, zodiac.Leo)
	require.NoError(t, err)

	require.Equal(t, ab.ID, ba.ID)
	require.Equal(t, ab.OverallScore, ba.OverallScore)
	require.Equal(t, ab.PreviewText, ba.PreviewText)

	var count int64
	require.NoError(t, svc.db.Model(&models.CompatibilityPair{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestPair_StoredInSortedOrder(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.Pair(context.Background(), zodiac.Virgo, zodiac.Gemini)
	require.NoError(t, err)
	require.True(t, pair.SignA <= pair.SignB)
	require.Equal(t, zodiac.Gemini, pair.SignA)
	require.Equal(t, zodiac.Virgo, pair.SignB)
}

func TestPair_FireFireScoreRange(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.Pair(context.Background(), zodiac.Aries, zodiac.Leo)
	require.NoError(t, err)

	require.GreaterOrEqual(t, pair.OverallScore, 85)
	require.LessOrEqual(t, pair.OverallScore, 95)
	require.NotEmpty(t, pair.PreviewText)
	require.NotEmpty(t, pair.PremiumText)
}

func TestPair_CategoryScoresClamped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, pairing := range [][2]zodiac.Sign{
		{zodiac.Aries, zodiac.Cancer},
		{zodiac.Taurus, zodiac.Libra},
		{zodiac.Scorpio, zodiac.Pisces},
	} {
		pair, err := svc.Pair(ctx, pairing[0], pairing[1])
		require.NoError(t, err)
		for _, score := range []int{pair.LoveScore, pair.CareerScore, pair.FriendshipScore} {
			require.GreaterOrEqual(t, score, 0)
			require.LessOrEqual(t, score, 100)
		}
	}
}

func TestPair_SameSignAllowed(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.Pair(context.Background(), zodiac.Leo, zodiac.Leo)
	require.NoError(t, err)
	require.Equal(t, zodiac.Leo, pair.SignA)
	require.Equal(t, zodiac.Leo, pair.SignB)
	require.GreaterOrEqual(t, pair.OverallScore, 85)
	require.LessOrEqual(t, pair.OverallScore, 95)
}

func TestPair_PremiumTextInterpolatesSigns(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.Pair(context.Background(), zodiac.Sagittarius, zodiac.Leo)
	require.NoError(t, err)
	require.Contains(t, pair.PremiumText, "Leo")
	require.Contains(t, pair.PremiumText, "Sagittarius")
	require.NotContains(t, pair.PremiumText, "{sign_a}")
	require.NotContains(t, pair.PremiumText, "{sign_b}")
}

func TestPair_InvalidSign(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Pair(context.Background(), "ophiuchus", zodiac.Leo)
	require.ErrorIs(t, err, ErrInvalidSign)
}

func TestGeneratePair_EarthWaterRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		gen := generatePair(zodiac.Taurus, zodiac.Pisces)
		require.GreaterOrEqual(t, gen.Overall, 75)
		require.LessOrEqual(t, gen.Overall, 85)
	}
}

func TestGeneratePair_FireWaterRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		gen := generatePair(zodiac.Aries, zodiac.Scorpio)
		require.GreaterOrEqual(t, gen.Overall, 40)
		require.LessOrEqual(t, gen.Overall, 60)
	}
}
