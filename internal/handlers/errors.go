package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
)

// respondError maps the application error taxonomy onto HTTP responses.
// Every branch returns a specific, user-actionable message; nothing is
// collapsed into a generic failure unless it really is one.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := apperrors.IsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": ve.Reason,
			"field":   ve.Field,
		})
	}

	if de, ok := apperrors.IsDuplicate(err); ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":    false,
			"message":    de.Error(),
			"duplicates": de.Fields,
		})
	}

	var status int
	switch {
	case errors.Is(err, apperrors.ErrSuspiciousInput),
		errors.Is(err, apperrors.ErrInvalidOTP),
		errors.Is(err, apperrors.ErrProfileIncomplete),
		errors.Is(err, apperrors.ErrVerificationNotFound):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrRateLimited):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, apperrors.ErrGatewayTimeout):
		status = fiber.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrGatewayConfig):
		status = fiber.StatusInternalServerError
	case errors.Is(err, apperrors.ErrAlreadyCompleted),
		errors.Is(err, apperrors.ErrAlreadyRegistered):
		status = fiber.StatusConflict
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrRouteNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		status = fiber.StatusUnauthorized
	default:
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
