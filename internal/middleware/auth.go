package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/services"
)

// Locals keys set by the auth middleware.
const (
	LocalsAccountID = "account_id"
	LocalsPhone     = "phone_number"
	LocalsRole      = "role"
)

// RequireAuth validates the Bearer token and stores its claims in locals.
// Expired and invalid tokens get distinct messages so clients can decide
// between refresh and re-login.
func RequireAuth(tokens *services.TokenService, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. No token provided.",
			})
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			message := "Invalid token."
			if errors.Is(err, apperrors.ErrTokenExpired) {
				message = "Token expired."
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		}

		if role != "" && claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied.",
			})
		}

		c.Locals(LocalsAccountID, claims.AccountID)
		c.Locals(LocalsPhone, claims.Phone)
		c.Locals(LocalsRole, claims.Role)
		return c.Next()
	}
}

// RequireOwnDriver gates profile-by-id routes: the token's account id must
// match the :driverId path parameter. There is no admin role, so nobody
// reads or writes another driver's profile.
func RequireOwnDriver() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, _ := c.Locals(LocalsAccountID).(string)
		if accountID == "" || accountID != c.Params("driverId") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied.",
			})
		}
		return c.Next()
	}
}
