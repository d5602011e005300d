package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.CreateForUser("user-123")
	require.NoError(t, err)

	sub, err := svc.ParseSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).CreateForUser("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).ParseSubject(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.CreateWithTTL("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ParseSubject(token)
	assert.Error(t, err)
}
