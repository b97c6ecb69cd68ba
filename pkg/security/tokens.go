package security

import (
	"errors"
	"fmt"
	"time"

	"taskhub/collab-api/config"
	"taskhub/collab-api/internal/model"
	"taskhub/collab-api/pkg/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jellydator/ttlcache/v2"
	"gorm.io/gorm"
)

// ErrInvalidToken covers everything the caller shouldn't learn more
// about: bad signature, wrong type, expired, malformed or blacklisted
var ErrInvalidToken = errors.New("invalid token")

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshClaims struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies the HS256 session tokens. Refresh
// tokens are individually revocable: their jti lands in the
// blacklisted_tokens table and a ttlcache in front of it keeps the
// per-request lookups off the database.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	db         *gorm.DB
	revoked    *ttlcache.Cache
}

func NewTokenIssuer(cfg *config.Config, db *gorm.DB) *TokenIssuer {
	cache := ttlcache.NewCache()
	cache.SetTTL(time.Minute * 5)
	cache.SkipTTLExtensionOnHit(true)

	return &TokenIssuer{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		db:         db,
		revoked:    cache,
	}
}

// MintPair creates a fresh access+refresh pair for a user
func (t *TokenIssuer) MintPair(userID string) (*TokenPair, error) {
	access, err := t.MintAccess(userID)
	if err != nil {
		return nil, err
	}

	jti, err := util.GenerateToken(16)
	if err != nil {
		return nil, err
	}

	refresh, err := t.sign(&jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"jti":     jti,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(t.refreshTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (t *TokenIssuer) MintAccess(userID string) (string, error) {
	return t.sign(&jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(t.accessTTL).Unix(),
	})
}

// ParseAccess verifies an access token and returns the user ID it
// was minted for
func (t *TokenIssuer) ParseAccess(tokenStr string) (string, error) {
	claims, err := t.parse(tokenStr, "access")
	if err != nil {
		return "", err
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

// ParseRefresh verifies a refresh token, including a blacklist
// membership check, and returns its claims
func (t *TokenIssuer) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	claims, err := t.parse(tokenStr, "refresh")
	if err != nil {
		return nil, err
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	jti, ok := (*claims)["jti"].(string)
	if !ok || jti == "" {
		return nil, ErrInvalidToken
	}

	exp, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	revoked, err := t.isBlacklisted(jti)
	if err != nil {
		return nil, err
	}

	if revoked {
		return nil, ErrInvalidToken
	}

	return &RefreshClaims{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// Blacklist revokes a refresh token. Revoking an already-blacklisted
// or otherwise invalid token fails with ErrInvalidToken, which makes
// logout resubmissions visible to the caller.
func (t *TokenIssuer) Blacklist(tokenStr string) error {
	claims, err := t.ParseRefresh(tokenStr)
	if err != nil {
		return err
	}

	err = t.db.Create(&model.BlacklistedToken{
		JTI:       claims.JTI,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
	}).Error
	if err != nil {
		return err
	}

	t.revoked.Set(claims.JTI, true)
	return nil
}

func (t *TokenIssuer) sign(c *jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) parse(tokenStr, wantType string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if typ, _ := claims["type"].(string); typ != wantType {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

func (t *TokenIssuer) isBlacklisted(jti string) (bool, error) {
	if _, err := t.revoked.Get(jti); err == nil {
		return true, nil
	}

	var found bool

	err := t.db.Model(model.BlacklistedToken{}).
		Select("count(*) > 0").
		Where("jti = ?", jti).
		Find(&found).
		Error
	if err != nil {
		return false, err
	}

	if found {
		t.revoked.Set(jti, true)
	}

	return found, nil
}
