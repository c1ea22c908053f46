package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute*30, time.Hour*24)

	access, refresh, err := svc.GenerateTokens(42, "security")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.UserID)
	assert.Equal(t, "security", accessClaims.Role)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTServiceRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Minute, time.Hour)
	verifier := NewJWTService("secret-b", time.Minute, time.Hour)

	access, _, err := issuer.GenerateTokens(1, "admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	require.Error(t, err)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(1, "it")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	require.Error(t, err)
}

func TestJWTServiceRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
