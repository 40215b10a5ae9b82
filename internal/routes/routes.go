package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/handlers"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/middleware"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/services"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, registration *services.RegistrationService, tokens *services.TokenService) {
	driverHandler := handlers.NewDriverHandler(registration, store)
	riderHandler := handlers.NewRiderHandler(registration, store)
	busHandler := handlers.NewBusHandler(store)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.Check)

	// Rider authentication
	api.Post("/send-otp", riderHandler.SendOTP)
	api.Post("/verify-otp", riderHandler.VerifyOTP)
	api.Post("/resend-otp", riderHandler.ResendOTP)
	api.Put("/signup", riderHandler.Signup)

	// Driver authentication
	api.Post("/send-otp-driver", driverHandler.SendOTP)
	api.Post("/login", driverHandler.SendOTP) // login reuses the OTP challenge
	api.Post("/verify-otp-driver", driverHandler.VerifyOTP)
	api.Post("/resend-otp-driver", driverHandler.ResendOTP)

	// Driver provisioning
	api.Post("/check-duplicate", driverHandler.CheckDuplicate)
	api.Post("/complete-profile", driverHandler.CompleteProfile)
	api.Post("/register-bus", driverHandler.RegisterBus)

	// Driver profile. Profile-by-id requires the token to own the id.
	driverAuth := middleware.RequireAuth(tokens, services.RoleDriver)
	api.Get("/profile/me", driverAuth, driverHandler.GetMyProfile)
	api.Get("/profile/:driverId", driverAuth, middleware.RequireOwnDriver(), driverHandler.GetProfile)
	api.Put("/profile/:driverId", driverAuth, middleware.RequireOwnDriver(), driverHandler.UpdateProfile)

	// Bus network
	api.Get("/routes", busHandler.GetRoutes)
	api.Get("/routes/:routeId/live", busHandler.GetLiveLocation)
}
