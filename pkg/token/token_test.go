package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	raw, err := Generate(42, "google_1a2b3c4d", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Parse(raw, testSecret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "google_1a2b3c4d", claims.Username)
}

func TestParse_Expired(t *testing.T) {
	raw, err := Generate(7, "guest_deadbeef", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, err := Generate(7, "guest_deadbeef", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(raw, "other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("not.a.token", testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshSecretSeparation(t *testing.T) {
	// A token signed with the access secret must not verify against the
	// refresh secret and vice versa.
	access, err := Generate(1, "apple_00112233", "access-secret", time.Hour)
	require.NoError(t, err)
	_, err = Parse(access, "refresh-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}
