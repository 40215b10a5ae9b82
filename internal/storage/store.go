package storage

import (
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations. Uniqueness of phone,
// email, license and vehicle number is enforced here, not by callers doing
// check-then-write.
type Store interface {
	// Driver operations
	CreateDriver(driver *models.Driver) (*models.Driver, error)
	GetDriverByID(driverID string) (*models.Driver, error)
	GetDriverByPhone(phone string) (*models.Driver, error)
	UpdateDriver(driver *models.Driver) error

	// CompleteDriverProfile sets the one-shot profile fields. It succeeds
	// only while Name is still empty; concurrent callers race on that
	// condition and exactly one wins.
	CompleteDriverProfile(driverID, name, license, email, country string) (*models.Driver, error)

	// RegisterDriverVehicle sets the vehicle fields and activates the
	// driver. Fails if this driver already has a vehicle or the number is
	// taken by another account.
	RegisterDriverVehicle(driverID, vehicleNo, vehicleType string) (*models.Driver, error)

	// FindDuplicateDriverFields returns the names of the given fields that
	// already belong to another driver. Empty arguments are skipped.
	FindDuplicateDriverFields(phone, license, email string) ([]string, error)

	// Rider operations
	CreateRider(rider *models.Rider) (*models.Rider, error)
	GetRiderByID(riderID string) (*models.Rider, error)
	GetRiderByPhone(phone string) (*models.Rider, error)
	CompleteRiderProfile(riderID, name, email string) (*models.Rider, error)

	// Bus network reads
	GetRoutes() ([]*models.Route, error)
	GetRoute(routeID string) (*models.Route, error)
	GetLatestBusLocation(routeID string) (*models.BusLocation, error)
}
