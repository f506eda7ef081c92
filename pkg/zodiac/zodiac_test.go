package zodiac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestSignForDate(t *testing.T) {
	cases := []struct {
		month, day int
		want       Sign
	}{
		{3, 21, Aries},
		{4, 19, Aries},
		{4, 20, Taurus},
		{6, 21, Cancer},
		{7, 23, Leo},
		{8, 22, Leo},
		{12, 22, Capricorn},
		{1, 19, Capricorn},
		{1, 20, Aquarius},
		{2, 19, Pisces},
		{11, 21, Scorpio},
		{11, 22, Sagittarius},
	}
	for _, tc := range cases {
		got := SignForDate(date(2000, tc.month, tc.day))
		require.Equal(t, tc.want, got, "month=%d day=%d", tc.month, tc.day)
	}
}

func TestValid(t *testing.T) {
	for _, s := range Signs {
		require.True(t, Valid(s))
	}
	require.False(t, Valid("ophiuchus"))
	require.False(t, Valid(""))
	require.False(t, Valid("Aries"))
}

func TestElementOf(t *testing.T) {
	require.Equal(t, Fire, ElementOf(Leo))
	require.Equal(t, Earth, ElementOf(Virgo))
	require.Equal(t, Air, ElementOf(Aquarius))
	require.Equal(t, Water, ElementOf(Pisces))
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Aries", Aries.Title())
	require.Equal(t, "Sagittarius", Sagittarius.Title())
}

func TestDruidSign(t *testing.T) {
	cases := []struct {
		month, day int
		want       string
	}{
		{12, 24, "birch"},
		{1, 20, "birch"},
		{1, 21, "rowan"},
		{6, 15, "oak"},
		{7, 10, "holly"},
		{9, 15, "vine"},
		{10, 30, "reed"},
		{11, 25, "elder"},
		{12, 23, "elder"},
	}
	for _, tc := range cases {
		got := DruidSign(date(1990, tc.month, tc.day))
		require.Equal(t, tc.want, got, "month=%d day=%d", tc.month, tc.day)
	}
}

func TestChineseAnimal(t *testing.T) {
	require.Equal(t, "rat", ChineseAnimal(date(1924, 6, 1)))
	require.Equal(t, "ox", ChineseAnimal(date(1925, 6, 1)))
	require.Equal(t, "rat", ChineseAnimal(date(1996, 6, 1)))
	require.Equal(t, "dragon", ChineseAnimal(date(2000, 6, 1)))
	// Years before the anchor still map onto the cycle.
	require.Equal(t, "pig", ChineseAnimal(date(1923, 6, 1)))
}
