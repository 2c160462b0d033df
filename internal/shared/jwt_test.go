package shared

import (
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour, "community-api")
}

func TestIssueAndParse(t *testing.T) {
	tokens := newTestTokens()

	pair, err := tokens.Issue("u1", types.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := tokens.Parse(pair.AccessToken, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, types.RoleAdmin, claims.Role)

	claims, err = tokens.Parse(pair.RefreshToken, TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	tokens := newTestTokens()
	pair, err := tokens.Issue("u1", types.RoleResident)
	require.NoError(t, err)

	_, err = tokens.Parse(pair.RefreshToken, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse(pair.AccessToken, TokenRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens := newTestTokens()
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := tokens.Issue("u1", types.RoleResident)
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(pair.AccessToken, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	other := NewTokenManager("other-secret", "other-refresh", time.Minute, time.Hour, "community-api")
	pair, err := other.Issue("u1", types.RoleAdmin)
	require.NoError(t, err)

	_, err = newTestTokens().Parse(pair.AccessToken, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = newTestTokens().Parse("not-a-jwt", TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
