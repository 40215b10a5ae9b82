package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
)

// Session roles carried in the token.
const (
	RoleDriver = "driver"
	RoleRider  = "rider"
)

const tokenExpiry = 7 * 24 * time.Hour

// SessionClaims is the payload bound to an issued session token.
type SessionClaims struct {
	AccountID string `json:"id"`
	Phone     string `json:"phone_number"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens. There is no
// server-side revocation; expiry is the only invalidation.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a 7-day token for the account.
func (s *TokenService) Issue(accountID, phone, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		AccountID: accountID,
		Phone:     phone,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "live-bus-tracking",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token. Expired tokens and malformed or
// tampered tokens are reported distinctly so callers can choose between
// re-login and refresh.
func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}
