package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/services"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/storage"
)

// RiderHandler handles rider authentication and signup requests.
type RiderHandler struct {
	registration *services.RegistrationService
	store        storage.Store
}

// NewRiderHandler creates a new rider handler.
func NewRiderHandler(registration *services.RegistrationService, store storage.Store) *RiderHandler {
	return &RiderHandler{
		registration: registration,
		store:        store,
	}
}

// SendOTP starts a verification for the rider's phone number.
func (h *RiderHandler) SendOTP(c *fiber.Ctx) error {
	return h.sendOTP(c, "Verification sent successfully")
}

// ResendOTP restarts the verification.
func (h *RiderHandler) ResendOTP(c *fiber.Ctx) error {
	return h.sendOTP(c, "Verification resent successfully")
}

func (h *RiderHandler) sendOTP(c *fiber.Ctx, message string) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.registration.StartOTP(c.Context(), req.Phone); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": fiber.Map{
			"phone_number": req.Phone,
			"status":       "pending",
		},
	})
}

// VerifyOTP checks the code and signs the rider in, creating a provisional
// account on first approval.
func (h *RiderHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	rider, isNew, token, err := h.registration.VerifyRiderOTP(c.Context(), req.Phone, req.OTP)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	if isNew {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"success":     true,
		"isNewUser":   isNew,
		"user":        rider,
		"accessToken": token,
	})
}

// Signup completes the rider profile and activates the account.
func (h *RiderHandler) Signup(c *fiber.Ctx) error {
	var req models.RiderSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	rider, err := h.registration.CompleteRiderProfile(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration completed successfully",
		"user":    rider,
	})
}
