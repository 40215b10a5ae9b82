package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/middleware"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/services"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/storage"
)

// DriverHandler handles driver authentication and provisioning requests.
type DriverHandler struct {
	registration *services.RegistrationService
	store        storage.Store
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(registration *services.RegistrationService, store storage.Store) *DriverHandler {
	return &DriverHandler{
		registration: registration,
		store:        store,
	}
}

type otpRequest struct {
	Phone string `json:"phone_number"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone_number"`
	OTP   string `json:"otp"`
}

// SendOTP starts a verification for the driver's phone number. Also serves
// login: an existing driver goes through the same challenge.
func (h *DriverHandler) SendOTP(c *fiber.Ctx) error {
	return h.sendOTP(c, "Verification sent successfully")
}

// ResendOTP restarts the verification; the provider invalidates the
// previous challenge.
func (h *DriverHandler) ResendOTP(c *fiber.Ctx) error {
	return h.sendOTP(c, "Verification resent successfully")
}

func (h *DriverHandler) sendOTP(c *fiber.Ctx, message string) error {
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

// VerifyOTP checks the code and signs the driver in, creating the account
// on first approval. 201 for a new account, 200 for an existing one.
func (h *DriverHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	driver, isNew, token, err := h.registration.VerifyDriverOTP(c.Context(), req.Phone, req.OTP)
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
		"user":        driver,
		"accessToken": token,
	})
}

// CheckDuplicate is the advisory pre-check the app runs before submitting
// the profile form.
func (h *DriverHandler) CheckDuplicate(c *fiber.Ctx) error {
	var req models.DuplicateCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	duplicates, err := h.registration.CheckDuplicates(&req)
	if err != nil {
		return respondError(c, err)
	}

	if len(duplicates) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":    false,
			"duplicates": duplicates,
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// CompleteProfile runs the one-shot profile step.
func (h *DriverHandler) CompleteProfile(c *fiber.Ctx) error {
	var req models.CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	driver, err := h.registration.CompleteDriverProfile(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile completed successfully",
		"user":    driver,
	})
}

// RegisterBus runs the vehicle step and activates the driver.
func (h *DriverHandler) RegisterBus(c *fiber.Ctx) error {
	var req models.RegisterVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	driver, err := h.registration.RegisterVehicle(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Bus registered successfully",
		"user":    driver,
	})
}

// GetMyProfile returns the authenticated driver's own record.
func (h *DriverHandler) GetMyProfile(c *fiber.Ctx) error {
	accountID, _ := c.Locals(middleware.LocalsAccountID).(string)

	driver, err := h.store.GetDriverByID(accountID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    driver,
	})
}

// GetProfile returns a driver by id. Ownership is enforced by middleware.
func (h *DriverHandler) GetProfile(c *fiber.Ctx) error {
	driver, err := h.store.GetDriverByID(c.Params("driverId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    driver,
	})
}

// UpdateProfile applies the mutable profile fields (email, country,
// active/busy status).
func (h *DriverHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	driver, err := h.registration.UpdateDriverProfile(c.Params("driverId"), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    driver,
	})
}
