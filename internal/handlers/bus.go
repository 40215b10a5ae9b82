package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/storage"
)

// BusHandler serves the bus network reads used by the rider map screens.
type BusHandler struct {
	store storage.Store
}

// NewBusHandler creates a new bus handler.
func NewBusHandler(store storage.Store) *BusHandler {
	return &BusHandler{store: store}
}

// GetRoutes returns all routes with their ordered stops.
func (h *BusHandler) GetRoutes(c *fiber.Ctx) error {
	routes, err := h.store.GetRoutes()
	if err != nil {
		return respondError(c, err)
	}

	data := make([]fiber.Map, 0, len(routes))
	for _, route := range routes {
		data = append(data, routeResponse(route))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetLiveLocation returns the latest reported position of the bus serving a
// route, with the surrounding stop context.
func (h *BusHandler) GetLiveLocation(c *fiber.Ctx) error {
	routeID := c.Params("routeId")
	if routeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Route ID is required",
		})
	}

	route, err := h.store.GetRoute(routeID)
	if err != nil {
		return respondError(c, err)
	}

	loc, err := h.store.GetLatestBusLocation(routeID)
	if err != nil {
		return respondError(c, err)
	}

	data := fiber.Map{
		"busNumber": route.BusNumber,
		"routeName": route.Name,
		"isActive":  loc != nil,
		"stops":     stopsResponse(route.Stops),
	}
	if loc != nil {
		data["currentLocation"] = fiber.Map{
			"latitude":  loc.Latitude,
			"longitude": loc.Longitude,
		}
		data["speed"] = fmt.Sprintf("%.0f km/h", loc.Speed)
		data["occupancy"] = fmt.Sprintf("%d%%", loc.Occupancy)
		data["recordedAt"] = loc.RecordedAt
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func routeResponse(route *models.Route) fiber.Map {
	return fiber.Map{
		"id":        route.RouteID,
		"name":      route.Name,
		"busNumber": route.BusNumber,
		"stops":     stopsResponse(route.Stops),
	}
}

func stopsResponse(stops []models.RouteStop) []fiber.Map {
	out := make([]fiber.Map, 0, len(stops))
	for _, stop := range stops {
		out = append(out, fiber.Map{
			"id":        stop.BusStand.StandID,
			"name":      stop.BusStand.Name,
			"latitude":  stop.BusStand.Latitude,
			"longitude": stop.BusStand.Longitude,
			"order":     stop.Position,
			"eta":       stop.ETA,
		})
	}
	return out
}
