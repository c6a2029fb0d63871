package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	svc, err := NewService("secret", "test", "hunter2")
	require.NoError(t, err)

	assert.NoError(t, svc.CheckPassword("hunter2"))
	assert.ErrorIs(t, svc.CheckPassword("wrong"), ErrBadPassword)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewService("secret", "test", "hunter2")
	require.NoError(t, err)

	token, err := svc.GenerateToken()
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Editor)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc, err := NewService("secret-a", "test", "hunter2")
	require.NoError(t, err)
	other, err := NewService("secret-b", "test", "hunter2")
	require.NoError(t, err)

	token, err := other.GenerateToken()
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestEmptySecretGetsRandomOne(t *testing.T) {
	svc, err := NewService("", "test", "hunter2")
	require.NoError(t, err)

	token, err := svc.GenerateToken()
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.NoError(t, err)
}
