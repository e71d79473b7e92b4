package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"invoicehub/internal/apperr"
	"invoicehub/internal/models"
	"invoicehub/internal/pkg/clock"
)

// Claims is the JWT payload for access tokens.
type Claims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.StandardClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

func NewTokenManager(secret string, expiry time.Duration, clk clock.Clock) *TokenManager {
	if clk == nil {
		clk = clock.System()
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry, clock: clk}
}

// Expiry returns the configured token lifetime.
func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// Issue signs an access token for the user.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := m.clock.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:    user.Email,
		FullName: user.FullName,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.expiry).Unix(),
		},
	})
	return t.SignedString(m.secret)
}

// Verify parses and validates a bearer token. Malformed, forged and expired
// tokens all map to ErrUnauthorized.
func (m *TokenManager) Verify(token string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, apperr.ErrUnauthorized
	}
	return &Identity{
		ID:       uint(id),
		Email:    claims.Email,
		FullName: claims.FullName,
		Expires:  time.Unix(claims.ExpiresAt, 0),
	}, nil
}
