package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("DRV-123", "+919876543210", RoleDriver)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "DRV-123", claims.AccountID)
	require.Equal(t, "+919876543210", claims.Phone)
	require.Equal(t, RoleDriver, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret")

	// Hand-craft a token that expired an hour ago, signed with the same secret
	claims := &SessionClaims{
		AccountID: "DRV-123",
		Phone:     "+919876543210",
		Role:      RoleDriver,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(expired)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenTampered(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("DRV-123", "+919876543210", RoleDriver)
	require.NoError(t, err)

	// Flip a byte in the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue("USR-1", "+919876543210", RoleRider)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")
	_, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
