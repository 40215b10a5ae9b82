package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/routes"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/services"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/storage"
)

// stubGateway approves one fixed code for any phone.
type stubGateway struct {
	code string
	err  error
}

func (g *stubGateway) StartVerification(ctx context.Context, phone, channel string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return "pending", nil
}

func (g *stubGateway) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return code == g.code, nil
}

func newTestApp(gateway services.VerifyGateway) (*fiber.App, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	tokens := services.NewTokenService("test-secret")
	registration := services.NewRegistrationService(store, gateway, tokens)

	app := fiber.New()
	routes.SetupRoutes(app, store, registration, tokens)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestSendOTPDriver(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	resp, body := doJSON(t, app, "POST", "/api/v1/send-otp-driver",
		fiber.Map{"phone_number": "+919876543210"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, "+919876543210", data["phone_number"])
	require.Equal(t, "pending", data["status"])
}

func TestSendOTPDriverInvalidPhone(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	resp, body := doJSON(t, app, "POST", "/api/v1/send-otp-driver",
		fiber.Map{"phone_number": "+91123"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, false, body["success"])
}

func TestSendOTPDriverRateLimited(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913", err: apperrors.ErrRateLimited})

	resp, _ := doJSON(t, app, "POST", "/api/v1/send-otp-driver",
		fiber.Map{"phone_number": "+919876543210"}, "")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestSendOTPDriverGatewayTimeout(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913", err: apperrors.ErrGatewayTimeout})

	resp, _ := doJSON(t, app, "POST", "/api/v1/send-otp-driver",
		fiber.Map{"phone_number": "+919876543210"}, "")
	require.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}

func TestSendOTPDriverMissingConfig(t *testing.T) {
	app, _ := newTestApp(services.NewDisabledGateway())

	resp, _ := doJSON(t, app, "POST", "/api/v1/send-otp-driver",
		fiber.Map{"phone_number": "+919876543210"}, "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestVerifyOTPDriverFlow(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	// Wrong code
	resp, _ := doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "000000"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Right code creates the account
	resp, body := doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["isNewUser"])
	require.NotEmpty(t, body["accessToken"])

	user := body["user"].(map[string]interface{})
	require.Equal(t, "inactive", user["status"])

	// Second verification finds the existing account
	resp, body = doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["isNewUser"])
}

func TestProvisioningEndToEnd(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	_, body := doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")
	user := body["user"].(map[string]interface{})
	driverID := user["driver_id"].(string)

	resp, body := doJSON(t, app, "POST", "/api/v1/complete-profile", fiber.Map{
		"driverId":         driverID,
		"name":             "Asha Rao",
		"drinving_license": "KL-11-2017-0001234",
		"email":            "asha@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]interface{})
	require.Equal(t, "inactive", user["status"], "driver stays inactive until the vehicle step")

	// Repeating the profile step conflicts
	resp, _ = doJSON(t, app, "POST", "/api/v1/complete-profile", fiber.Map{
		"driverId":         driverID,
		"name":             "Other Name",
		"drinving_license": "KL-99-2020-0009999",
	}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/api/v1/register-bus", fiber.Map{
		"driverId":      driverID,
		"vehicleNumber": "KL-07-1234",
		"vehicleType":   "Petrol",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]interface{})
	require.Equal(t, "active", user["status"])
}

func TestCheckDuplicate(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	resp, body := doJSON(t, app, "POST", "/api/v1/check-duplicate",
		fiber.Map{"phoneNumber": "+919876543210"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")

	resp, body = doJSON(t, app, "POST", "/api/v1/check-duplicate",
		fiber.Map{"phoneNumber": "+919876543210"}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["duplicates"], "phoneNumber")
}

func TestProfileAuth(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	_, body := doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")
	token := body["accessToken"].(string)
	user := body["user"].(map[string]interface{})
	driverID := user["driver_id"].(string)

	// No token
	resp, _ := doJSON(t, app, "GET", "/api/v1/profile/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Own profile
	resp, body = doJSON(t, app, "GET", "/api/v1/profile/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]interface{})
	require.Equal(t, driverID, user["driver_id"])

	resp, _ = doJSON(t, app, "GET", "/api/v1/profile/"+driverID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Another driver's profile is forbidden even with a valid token
	resp, _ = doJSON(t, app, "GET", "/api/v1/profile/DRV-other", nil, token)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Garbage token
	resp, _ = doJSON(t, app, "GET", "/api/v1/profile/me", nil, "garbage")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	_, body := doJSON(t, app, "POST", "/api/v1/verify-otp-driver",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")
	token := body["accessToken"].(string)
	user := body["user"].(map[string]interface{})
	driverID := user["driver_id"].(string)

	doJSON(t, app, "POST", "/api/v1/complete-profile", fiber.Map{
		"driverId":         driverID,
		"name":             "Asha Rao",
		"drinving_license": "KL-11-2017-0001234",
	}, "")
	doJSON(t, app, "POST", "/api/v1/register-bus", fiber.Map{
		"driverId":      driverID,
		"vehicleNumber": "KL-07-1234",
		"vehicleType":   "Petrol",
	}, "")

	resp, body := doJSON(t, app, "PUT", "/api/v1/profile/"+driverID,
		fiber.Map{"status": "busy", "country": "India"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]interface{})
	require.Equal(t, "busy", user["status"])
	require.Equal(t, "India", user["country"])
}

func TestRiderSignup(t *testing.T) {
	app, _ := newTestApp(&stubGateway{code: "482913"})

	resp, body := doJSON(t, app, "POST", "/api/v1/verify-otp",
		fiber.Map{"phone_number": "+919876543210", "otp": "482913"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "provisional", user["status"])
	riderID := user["user_id"].(string)

	resp, body = doJSON(t, app, "PUT", "/api/v1/signup", fiber.Map{
		"userId": riderID,
		"name":   "Meera Nair",
		"email":  "meera@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]interface{})
	require.Equal(t, "active", user["status"])
}

func TestBusRoutes(t *testing.T) {
	app, store := newTestApp(&stubGateway{code: "482913"})

	store.AddRoute(&models.Route{
		RouteID:   "RT-1",
		Name:      "City Loop",
		BusNumber: "KL-07-1234",
		Stops: []models.RouteStop{
			{Position: 1, ETA: "08:00", BusStand: models.BusStand{StandID: "STD-1", Name: "Central", Latitude: 9.93, Longitude: 76.26}},
		},
	})
	store.AddBusLocation(&models.BusLocation{RouteID: "RT-1", Latitude: 9.94, Longitude: 76.27, Speed: 25, Occupancy: 60})

	resp, body := doJSON(t, app, "GET", "/api/v1/routes", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)

	resp, body = doJSON(t, app, "GET", "/api/v1/routes/RT-1/live", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	live := body["data"].(map[string]interface{})
	require.Equal(t, "KL-07-1234", live["busNumber"])
	require.Equal(t, true, live["isActive"])

	resp, _ = doJSON(t, app, "GET", "/api/v1/routes/RT-missing/live", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
