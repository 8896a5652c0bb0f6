package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTUtil_RoundTrip(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "k", ExpirationHours: 1})

	token, err := j.GenerateToken("admin-1", "meena")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "meena", claims.Username)
	assert.Equal(t, "admin-1", claims.Subject)
}

func TestJWTUtil_RejectsForeignKey(t *testing.T) {
	issuer := NewJWTUtil(&JWTConfig{SigningKey: "one", ExpirationHours: 1})
	verifier := NewJWTUtil(&JWTConfig{SigningKey: "two", ExpirationHours: 1})

	token, err := issuer.GenerateToken("admin-1", "meena")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTUtil_RejectsExpired(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "k", ExpirationHours: -1})

	token, err := j.GenerateToken("admin-1", "meena")
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTUtil_MissingConfig(t *testing.T) {
	j := NewJWTUtil(nil)

	_, err := j.GenerateToken("admin-1", "meena")
	assert.Error(t, err)

	_, err = j.ValidateToken("anything")
	assert.Error(t, err)
}
