package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicehub/internal/apperr"
	"invoicehub/internal/models"
	"invoicehub/internal/pkg/clock"
)

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Email:    "billing@example.com",
		FullName: "Billing Admin",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("test-secret", time.Hour, clock.Fixed(now))

	token, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), identity.ID)
	assert.Equal(t, "billing@example.com", identity.Email)
	assert.Equal(t, "Billing Admin", identity.FullName)
	assert.True(t, identity.ValidAt(now))
	assert.True(t, identity.ValidAt(now.Add(59*time.Minute)))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	m := NewTokenManager("test-secret", time.Hour, clock.Fixed(issued))

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	// token expired one hour ago relative to the real clock used by Verify
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	now := time.Now()
	issuer := NewTokenManager("secret-a", time.Hour, clock.Fixed(now))
	verifier := NewTokenManager("secret-b", time.Hour, clock.Fixed(now))

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	_, err := m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestIdentityValidAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var missing *Identity
	assert.False(t, missing.ValidAt(now))

	expired := &Identity{ID: 1, Expires: now.Add(-time.Second)}
	assert.False(t, expired.ValidAt(now))

	valid := &Identity{ID: 1, Expires: now.Add(time.Second)}
	assert.True(t, valid.ValidAt(now))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, ComparePassword(hash, "correct horse battery staple"))
	assert.Error(t, ComparePassword(hash, "wrong password"))
}
