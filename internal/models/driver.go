package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/validation"
)

// Driver status values
const (
	DriverStatusInactive = "inactive"
	DriverStatusActive   = "active"
	DriverStatusBusy     = "busy"
)

// Vehicle types accepted at bus registration
var VehicleTypes = map[string]bool{
	"Electric": true,
	"Petrol":   true,
	"Diesel":   true,
	"Hybrid":   true,
}

// Driver represents a bus driver account. An account is created with the
// phone number alone after OTP approval and only becomes active once the
// profile and vehicle steps are done.
type Driver struct {
	gorm.Model

	DriverID string `json:"driver_id" gorm:"uniqueIndex"`
	Phone    string `json:"phone_number" gorm:"uniqueIndex;not null"` // E.164, immutable once verified
	Name     string `json:"name"`                                     // empty until profile step completes

	// Unique-when-present fields are pointers so missing values stay NULL
	// and never collide on the unique index.
	Email     *string `json:"email" gorm:"uniqueIndex"`
	LicenseNo *string `json:"drinving_license" gorm:"uniqueIndex"` // uppercase, field name kept for app compatibility
	Country   string  `json:"country"`

	VehicleNo   *string `json:"vehicle_number" gorm:"uniqueIndex"` // uppercase
	VehicleType string  `json:"vehicle_type"`                      // Electric, Petrol, Diesel, Hybrid

	Status string `json:"status" gorm:"default:inactive"` // inactive, active, busy

	// Ride statistics, mutated only by ride-completion events
	Rating         float64 `json:"rating" gorm:"default:0"`
	TotalEarnings  float64 `json:"total_earnings" gorm:"default:0"`
	TotalRides     int     `json:"total_rides" gorm:"default:0"`
	PendingRides   int     `json:"pending_rides" gorm:"default:0"`
	CancelledRides int     `json:"cancelled_rides" gorm:"default:0"`
}

// BeforeCreate hook to assign DriverID and normalize data
func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.DriverID == "" {
		d.DriverID = "DRV-" + uuid.NewString()
	}

	if d.VehicleNo != nil {
		v := strings.ToUpper(strings.TrimSpace(*d.VehicleNo))
		d.VehicleNo = &v
	}
	if d.LicenseNo != nil {
		l := strings.ToUpper(strings.TrimSpace(*d.LicenseNo))
		d.LicenseNo = &l
	}

	// Phone is stored in E.164; default to India when the prefix is missing
	d.Phone = validation.NormalizePhone(d.Phone)

	if d.Status == "" {
		d.Status = DriverStatusInactive
	}

	return nil
}

// ProfileCompleted reports whether the one-shot profile step already ran.
func (d *Driver) ProfileCompleted() bool {
	return d.Name != ""
}

// VehicleRegistered reports whether the vehicle step already ran.
func (d *Driver) VehicleRegistered() bool {
	return d.VehicleNo != nil && *d.VehicleNo != ""
}

// CompleteRide records a finished ride. Called by ride lifecycle events
// outside the registration flow.
func (d *Driver) CompleteRide(fare float64, rating float64) {
	d.TotalRides++
	d.TotalEarnings += fare
	if d.PendingRides > 0 {
		d.PendingRides--
	}
	if d.TotalRides == 1 {
		d.Rating = rating
	} else {
		d.Rating = ((d.Rating * float64(d.TotalRides-1)) + rating) / float64(d.TotalRides)
	}
}

// CancelRide records a cancelled ride.
func (d *Driver) CancelRide() {
	d.CancelledRides++
	if d.PendingRides > 0 {
		d.PendingRides--
	}
}

// CompleteProfileRequest is the payload for the one-shot profile step.
type CompleteProfileRequest struct {
	DriverID  string `json:"driverId"`
	Name      string `json:"name"`
	LicenseNo string `json:"drinving_license"`
	Email     string `json:"email"`
	Country   string `json:"country"`
}

// RegisterVehicleRequest is the payload for bus registration.
type RegisterVehicleRequest struct {
	DriverID    string `json:"driverId"`
	VehicleNo   string `json:"vehicleNumber"`
	VehicleType string `json:"vehicleType"`
}

// DuplicateCheckRequest carries the fields the client wants pre-checked.
type DuplicateCheckRequest struct {
	Phone     string `json:"phoneNumber"`
	LicenseNo string `json:"drinving_license"`
	Email     string `json:"email"`
}

// UpdateProfileRequest carries the mutable profile fields. Name, license,
// vehicle and phone have dedicated one-shot operations and are not updatable
// here.
type UpdateProfileRequest struct {
	Email   *string `json:"email"`
	Country *string `json:"country"`
	Status  *string `json:"status"`
}
