package security

import (
	"fmt"
	"testing"
	"time"

	"taskhub/collab-api/config"
	"taskhub/collab-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestIssuer(t *testing.T, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.BlacklistedToken{}))

	return NewTokenIssuer(&config.Config{
		JWTSecret:  "test-secret",
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}, db)
}

func TestMintPairAndParse(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)

	pair, err := issuer.MintPair("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	userID, err := issuer.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	claims, err := issuer.ParseRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.JTI)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)

	pair, err := issuer.MintPair("user-1")
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseRefresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAccessToken(t *testing.T) {
	issuer := newTestIssuer(t, -time.Minute, time.Hour)

	access, err := issuer.MintAccess("user-1")
	require.NoError(t, err)

	_, err = issuer.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecret(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)
	other := newTestIssuer(t, time.Minute*30, time.Hour)
	other.secret = []byte("different-secret")

	access, err := issuer.MintAccess("user-1")
	require.NoError(t, err)

	_, err = other.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedToken(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)

	_, err := issuer.ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseRefresh("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklist(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)

	pair, err := issuer.MintPair("user-1")
	require.NoError(t, err)

	require.NoError(t, issuer.Blacklist(pair.Refresh))

	// A blacklisted refresh token must never verify again
	_, err = issuer.ParseRefresh(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// And blacklisting it a second time fails too
	assert.ErrorIs(t, issuer.Blacklist(pair.Refresh), ErrInvalidToken)
}

func TestBlacklistIsPerToken(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)

	first, err := issuer.MintPair("user-1")
	require.NoError(t, err)

	second, err := issuer.MintPair("user-1")
	require.NoError(t, err)

	require.NoError(t, issuer.Blacklist(first.Refresh))

	// Revocation is per token, not per user
	_, err = issuer.ParseRefresh(second.Refresh)
	assert.NoError(t, err)
}

func TestBlacklistSurvivesCacheMiss(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute*30, time.Hour)

	pair, err := issuer.MintPair("user-1")
	require.NoError(t, err)
	require.NoError(t, issuer.Blacklist(pair.Refresh))

	// Fresh cache, the database row alone must be enough
	issuer.revoked.Purge()

	_, err = issuer.ParseRefresh(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
