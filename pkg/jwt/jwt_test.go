package jwt

import (
	"testing"
	"time"

	"vetcare-booking/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})

	token, tokenID, err := svc.GenerateAdminToken("recepcion")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "recepcion", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "secret-a", Expiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "secret-b", Expiry: time.Hour})

	token, _, err := issuer.GenerateAdminToken("recepcion")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: -time.Minute})

	token, _, err := svc.GenerateAdminToken("recepcion")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
