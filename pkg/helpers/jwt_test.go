package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	tok, exp, err := m.GenerateAccessToken("user-1", "sess-1", []string{"user", "manager"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(m.AccessTTL), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, []string{"user", "manager"}, claims.Roles)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := testManager()

	tok, _, err := m.GenerateRefreshToken("user-1", "sess-1")
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Empty(t, claims.Roles)
}

func TestAccessTokenRejectedByRefreshSecret(t *testing.T) {
	m := testManager()

	tok, _, err := m.GenerateAccessToken("user-1", "sess-1", nil)
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(tok)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := testManager()
	m.AccessTTL = -time.Minute

	tok, _, err := m.GenerateAccessToken("user-1", "sess-1", nil)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}
