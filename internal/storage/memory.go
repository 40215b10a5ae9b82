package storage

import (
	"sort"
	"sync"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/validation"
)

// MemoryStore holds all data in memory, used by tests and local development
// (USE_MEMORY_STORE=true). It enforces the same uniqueness rules as the
// database unique indexes.
type MemoryStore struct {
	mu        sync.Mutex
	drivers   map[string]*models.Driver // keyed by DriverID
	riders    map[string]*models.Rider  // keyed by RiderID
	routes    map[string]*models.Route
	locations map[string][]*models.BusLocation // keyed by RouteID
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drivers:   make(map[string]*models.Driver),
		riders:    make(map[string]*models.Rider),
		routes:    make(map[string]*models.Route),
		locations: make(map[string][]*models.BusLocation),
	}
}

func copyDriver(d *models.Driver) *models.Driver {
	c := *d
	return &c
}

func copyRider(r *models.Rider) *models.Rider {
	c := *r
	return &c
}

// Driver operations

func (m *MemoryStore) CreateDriver(driver *models.Driver) (*models.Driver, error) {
	// Same normalization the database path gets from the GORM hook
	if err := driver.BeforeCreate(nil); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var dup []string
	for _, existing := range m.drivers {
		if existing.Phone == driver.Phone {
			dup = append(dup, "phoneNumber")
		}
	}
	if len(dup) > 0 {
		return nil, &apperrors.DuplicateError{Fields: dup}
	}

	stored := copyDriver(driver)
	m.drivers[stored.DriverID] = stored
	return copyDriver(stored), nil
}

func (m *MemoryStore) GetDriverByID(driverID string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	driver, ok := m.drivers[driverID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return copyDriver(driver), nil
}

func (m *MemoryStore) GetDriverByPhone(phone string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, driver := range m.drivers {
		if driver.Phone == phone {
			return copyDriver(driver), nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (m *MemoryStore) UpdateDriver(driver *models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drivers[driver.DriverID]; !ok {
		return apperrors.ErrAccountNotFound
	}
	m.drivers[driver.DriverID] = copyDriver(driver)
	return nil
}

func (m *MemoryStore) CompleteDriverProfile(driverID, name, license, email, country string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	driver, ok := m.drivers[driverID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if driver.Name != "" {
		return nil, apperrors.ErrAlreadyCompleted
	}

	normalizedLicense := validation.NormalizeLicense(license)
	var dup []string
	for id, existing := range m.drivers {
		if id == driverID {
			continue
		}
		if existing.LicenseNo != nil && *existing.LicenseNo == normalizedLicense {
			dup = append(dup, "drinving_license")
		}
		if email != "" && existing.Email != nil && *existing.Email == email {
			dup = append(dup, "email")
		}
	}
	if len(dup) > 0 {
		return nil, &apperrors.DuplicateError{Fields: dup}
	}

	driver.Name = name
	driver.LicenseNo = &normalizedLicense
	if email != "" {
		e := email
		driver.Email = &e
	}
	driver.Country = country
	return copyDriver(driver), nil
}

func (m *MemoryStore) RegisterDriverVehicle(driverID, vehicleNo, vehicleType string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	driver, ok := m.drivers[driverID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if driver.VehicleNo != nil && *driver.VehicleNo != "" {
		return nil, apperrors.ErrAlreadyRegistered
	}

	normalized := validation.NormalizeVehicleNo(vehicleNo)
	for id, existing := range m.drivers {
		if id == driverID {
			continue
		}
		if existing.VehicleNo != nil && *existing.VehicleNo == normalized {
			return nil, &apperrors.DuplicateError{Fields: []string{"vehicleNumber"}}
		}
	}

	driver.VehicleNo = &normalized
	driver.VehicleType = vehicleType
	driver.Status = models.DriverStatusActive
	return copyDriver(driver), nil
}

func (m *MemoryStore) FindDuplicateDriverFields(phone, license, email string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	normalizedLicense := validation.NormalizeLicense(license)
	var dup []string
	for _, existing := range m.drivers {
		if phone != "" && existing.Phone == phone {
			dup = append(dup, "phoneNumber")
		}
		if license != "" && existing.LicenseNo != nil && *existing.LicenseNo == normalizedLicense {
			dup = append(dup, "drinving_license")
		}
		if email != "" && existing.Email != nil && *existing.Email == email {
			dup = append(dup, "email")
		}
	}
	return dup, nil
}

// Rider operations

func (m *MemoryStore) CreateRider(rider *models.Rider) (*models.Rider, error) {
	if err := rider.BeforeCreate(nil); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.riders {
		if existing.Phone == rider.Phone {
			return nil, &apperrors.DuplicateError{Fields: []string{"phoneNumber"}}
		}
	}

	stored := copyRider(rider)
	m.riders[stored.RiderID] = stored
	return copyRider(stored), nil
}

func (m *MemoryStore) GetRiderByID(riderID string) (*models.Rider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rider, ok := m.riders[riderID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return copyRider(rider), nil
}

func (m *MemoryStore) GetRiderByPhone(phone string) (*models.Rider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rider := range m.riders {
		if rider.Phone == phone {
			return copyRider(rider), nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (m *MemoryStore) CompleteRiderProfile(riderID, name, email string) (*models.Rider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rider, ok := m.riders[riderID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if rider.Name != "" {
		return nil, apperrors.ErrAlreadyCompleted
	}

	if email != "" {
		for id, existing := range m.riders {
			if id == riderID {
				continue
			}
			if existing.Email != nil && *existing.Email == email {
				return nil, &apperrors.DuplicateError{Fields: []string{"email"}}
			}
		}
	}

	rider.Name = name
	if email != "" {
		e := email
		rider.Email = &e
	}
	rider.Status = models.RiderStatusActive
	return copyRider(rider), nil
}

// Bus network reads

func (m *MemoryStore) GetRoutes() ([]*models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make([]*models.Route, 0, len(m.routes))
	for _, route := range m.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].RouteID < routes[j].RouteID })
	return routes, nil
}

func (m *MemoryStore) GetRoute(routeID string) (*models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	route, ok := m.routes[routeID]
	if !ok {
		return nil, apperrors.ErrRouteNotFound
	}
	return route, nil
}

func (m *MemoryStore) GetLatestBusLocation(routeID string) (*models.BusLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pings := m.locations[routeID]
	if len(pings) == 0 {
		return nil, nil
	}
	return pings[len(pings)-1], nil
}

// AddRoute seeds a route, used by tests and local development.
func (m *MemoryStore) AddRoute(route *models.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.RouteID] = route
}

// AddBusLocation appends a GPS ping for a route.
func (m *MemoryStore) AddBusLocation(loc *models.BusLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[loc.RouteID] = append(m.locations[loc.RouteID], loc)
}
