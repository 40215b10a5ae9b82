package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusStand is a stop on the network.
type BusStand struct {
	gorm.Model
	StandID   string  `json:"id" gorm:"uniqueIndex"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func (b *BusStand) BeforeCreate(tx *gorm.DB) error {
	if b.StandID == "" {
		b.StandID = "STD-" + uuid.NewString()
	}
	return nil
}

// Route is an ordered sequence of bus stands served by one bus.
type Route struct {
	gorm.Model
	RouteID   string      `json:"id" gorm:"uniqueIndex"`
	Name      string      `json:"name"`
	BusNumber string      `json:"busNumber"`
	Polyline  string      `json:"-"` // encoded path, decoded client side
	Stops     []RouteStop `json:"stops" gorm:"foreignKey:RouteID;references:RouteID"`
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.RouteID == "" {
		r.RouteID = "RT-" + uuid.NewString()
	}
	return nil
}

// RouteStop links a route to a stand with its position and scheduled ETA.
type RouteStop struct {
	gorm.Model
	RouteID  string   `json:"-" gorm:"index"`
	StandID  string   `json:"-" gorm:"index"`
	Position int      `json:"order"` // 1-based position along the route
	ETA      string   `json:"eta"` // HH:MM
	BusStand BusStand `json:"busStand" gorm:"foreignKey:StandID;references:StandID"`
}

// BusLocation is a GPS ping reported for the bus serving a route.
type BusLocation struct {
	gorm.Model
	RouteID    string    `json:"route_id" gorm:"index"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Speed      float64   `json:"speed"`     // km/h
	Occupancy  int       `json:"occupancy"` // percent
	RecordedAt time.Time `json:"recorded_at"`
}
