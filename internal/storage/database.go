package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/validation"
)

// DatabaseStore implements Store on PostgreSQL via GORM. Uniqueness is
// enforced by the unique indexes on the models; one-shot steps use
// conditional updates so concurrent callers are serialized by the database.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// translateError maps a GORM error onto the application taxonomy. The
// connection is opened with TranslateError so unique violations arrive as
// gorm.ErrDuplicatedKey.
func translateError(err error, duplicateFields ...string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperrors.DuplicateError{Fields: duplicateFields}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrAccountNotFound
	default:
		return fmt.Errorf("database error: %w", err)
	}
}

// Driver operations

func (s *DatabaseStore) CreateDriver(driver *models.Driver) (*models.Driver, error) {
	if err := s.db.Create(driver).Error; err != nil {
		return nil, translateError(err, "phoneNumber")
	}
	return driver, nil
}

func (s *DatabaseStore) GetDriverByID(driverID string) (*models.Driver, error) {
	var driver models.Driver
	if err := s.db.Where("driver_id = ?", driverID).First(&driver).Error; err != nil {
		return nil, translateError(err)
	}
	return &driver, nil
}

func (s *DatabaseStore) GetDriverByPhone(phone string) (*models.Driver, error) {
	var driver models.Driver
	if err := s.db.Where("phone = ?", phone).First(&driver).Error; err != nil {
		return nil, translateError(err)
	}
	return &driver, nil
}

func (s *DatabaseStore) UpdateDriver(driver *models.Driver) error {
	res := s.db.Model(&models.Driver{}).Where("driver_id = ?", driver.DriverID).
		Select("email", "country", "status", "rating", "total_earnings",
			"total_rides", "pending_rides", "cancelled_rides").
		Updates(driver)
	if res.Error != nil {
		return translateError(res.Error, "email")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

func (s *DatabaseStore) CompleteDriverProfile(driverID, name, license, email, country string) (*models.Driver, error) {
	updates := map[string]interface{}{
		"name":       name,
		"license_no": validation.NormalizeLicense(license),
		"country":    country,
	}
	if email != "" {
		updates["email"] = email
	}

	// Conditional update: only the first caller finds name still empty, so
	// the database serializes concurrent completion attempts.
	res := s.db.Model(&models.Driver{}).
		Where("driver_id = ? AND (name IS NULL OR name = '')", driverID).
		Updates(updates)
	if res.Error != nil {
		return nil, translateError(res.Error, "drinving_license", "email")
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetDriverByID(driverID); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrAlreadyCompleted
	}

	return s.GetDriverByID(driverID)
}

func (s *DatabaseStore) RegisterDriverVehicle(driverID, vehicleNo, vehicleType string) (*models.Driver, error) {
	res := s.db.Model(&models.Driver{}).
		Where("driver_id = ? AND (vehicle_no IS NULL OR vehicle_no = '')", driverID).
		Updates(map[string]interface{}{
			"vehicle_no":   validation.NormalizeVehicleNo(vehicleNo),
			"vehicle_type": vehicleType,
			"status":       models.DriverStatusActive,
		})
	if res.Error != nil {
		return nil, translateError(res.Error, "vehicleNumber")
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetDriverByID(driverID); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrAlreadyRegistered
	}

	return s.GetDriverByID(driverID)
}

func (s *DatabaseStore) FindDuplicateDriverFields(phone, license, email string) ([]string, error) {
	var dup []string

	count := func(column, value string) (bool, error) {
		var n int64
		if err := s.db.Model(&models.Driver{}).Where(column+" = ?", value).Count(&n).Error; err != nil {
			return false, fmt.Errorf("database error: %w", err)
		}
		return n > 0, nil
	}

	if phone != "" {
		found, err := count("phone", phone)
		if err != nil {
			return nil, err
		}
		if found {
			dup = append(dup, "phoneNumber")
		}
	}
	if license != "" {
		found, err := count("license_no", validation.NormalizeLicense(license))
		if err != nil {
			return nil, err
		}
		if found {
			dup = append(dup, "drinving_license")
		}
	}
	if email != "" {
		found, err := count("email", email)
		if err != nil {
			return nil, err
		}
		if found {
			dup = append(dup, "email")
		}
	}

	return dup, nil
}

// Rider operations

func (s *DatabaseStore) CreateRider(rider *models.Rider) (*models.Rider, error) {
	if err := s.db.Create(rider).Error; err != nil {
		return nil, translateError(err, "phoneNumber")
	}
	return rider, nil
}

func (s *DatabaseStore) GetRiderByID(riderID string) (*models.Rider, error) {
	var rider models.Rider
	if err := s.db.Where("rider_id = ?", riderID).First(&rider).Error; err != nil {
		return nil, translateError(err)
	}
	return &rider, nil
}

func (s *DatabaseStore) GetRiderByPhone(phone string) (*models.Rider, error) {
	var rider models.Rider
	if err := s.db.Where("phone = ?", phone).First(&rider).Error; err != nil {
		return nil, translateError(err)
	}
	return &rider, nil
}

func (s *DatabaseStore) CompleteRiderProfile(riderID, name, email string) (*models.Rider, error) {
	updates := map[string]interface{}{
		"name":   name,
		"status": models.RiderStatusActive,
	}
	if email != "" {
		updates["email"] = email
	}

	res := s.db.Model(&models.Rider{}).
		Where("rider_id = ? AND (name IS NULL OR name = '')", riderID).
		Updates(updates)
	if res.Error != nil {
		return nil, translateError(res.Error, "email")
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetRiderByID(riderID); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrAlreadyCompleted
	}

	return s.GetRiderByID(riderID)
}

// Bus network reads

func (s *DatabaseStore) GetRoutes() ([]*models.Route, error) {
	var routes []*models.Route
	err := s.db.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("route_stops.position ASC")
	}).Preload("Stops.BusStand").Find(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return routes, nil
}

func (s *DatabaseStore) GetRoute(routeID string) (*models.Route, error) {
	var route models.Route
	err := s.db.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("route_stops.position ASC")
	}).Preload("Stops.BusStand").Where("route_id = ?", routeID).First(&route).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &route, nil
}

func (s *DatabaseStore) GetLatestBusLocation(routeID string) (*models.BusLocation, error) {
	var loc models.BusLocation
	err := s.db.Where("route_id = ?", routeID).Order("recorded_at DESC").First(&loc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &loc, nil
}
