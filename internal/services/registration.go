package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/models"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/storage"
	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/validation"
)

// RegistrationService drives both registration flows: OTP start/check,
// find-or-create of the account, the one-shot profile step and, for drivers,
// the vehicle step. All uniqueness races are settled by the store.
type RegistrationService struct {
	store   storage.Store
	gateway VerifyGateway
	tokens  *TokenService
}

// NewRegistrationService wires the flow with its dependencies.
func NewRegistrationService(store storage.Store, gateway VerifyGateway, tokens *TokenService) *RegistrationService {
	return &RegistrationService{
		store:   store,
		gateway: gateway,
		tokens:  tokens,
	}
}

// StartOTP validates the number and asks the gateway to deliver a code over
// SMS. The same call serves first sends and resends: the provider
// invalidates the previous challenge when a new one starts.
func (s *RegistrationService) StartOTP(ctx context.Context, phone string) error {
	if err := validation.E164Phone(phone); err != nil {
		return err
	}
	_, err := s.gateway.StartVerification(ctx, validation.NormalizePhone(phone), "sms")
	return err
}

// VerifyDriverOTP checks the code and resolves the driver account, creating
// it on first approval. Returns the account, whether it was just created,
// and a session token.
func (s *RegistrationService) VerifyDriverOTP(ctx context.Context, phone, code string) (*models.Driver, bool, string, error) {
	if err := s.checkOTP(ctx, phone, code); err != nil {
		return nil, false, "", err
	}

	driver, isNew, err := s.resolveOrCreateDriver(phone)
	if err != nil {
		return nil, false, "", err
	}

	token, err := s.tokens.Issue(driver.DriverID, driver.Phone, RoleDriver)
	if err != nil {
		return nil, false, "", err
	}

	return driver, isNew, token, nil
}

// VerifyRiderOTP is the rider counterpart of VerifyDriverOTP.
func (s *RegistrationService) VerifyRiderOTP(ctx context.Context, phone, code string) (*models.Rider, bool, string, error) {
	if err := s.checkOTP(ctx, phone, code); err != nil {
		return nil, false, "", err
	}

	rider, isNew, err := s.resolveOrCreateRider(phone)
	if err != nil {
		return nil, false, "", err
	}

	token, err := s.tokens.Issue(rider.RiderID, rider.Phone, RoleRider)
	if err != nil {
		return nil, false, "", err
	}

	return rider, isNew, token, nil
}

func (s *RegistrationService) checkOTP(ctx context.Context, phone, code string) error {
	if err := validation.E164Phone(phone); err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		return apperrors.NewValidation("otp", "is required")
	}

	approved, err := s.gateway.CheckVerification(ctx, validation.NormalizePhone(phone), code)
	if err != nil {
		return err
	}
	if !approved {
		return apperrors.ErrInvalidOTP
	}
	return nil
}

// resolveOrCreateDriver finds the account for a verified phone number or
// creates it inactive. When two callers race on an unseen number the store's
// unique constraint rejects one; the loser re-reads and finds the winner's
// record, so exactly one account ever exists per phone. Lookups use the same
// canonical E.164 form the create path stores, so a bare national number
// resolves to the account it created.
func (s *RegistrationService) resolveOrCreateDriver(phone string) (*models.Driver, bool, error) {
	phone = validation.NormalizePhone(phone)
	driver, err := s.store.GetDriverByPhone(phone)
	if err == nil {
		return driver, false, nil
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, false, err
	}

	created, err := s.store.CreateDriver(&models.Driver{Phone: phone})
	if err == nil {
		return created, true, nil
	}
	if _, isDup := apperrors.IsDuplicate(err); isDup {
		existing, err := s.store.GetDriverByPhone(phone)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return nil, false, err
}

func (s *RegistrationService) resolveOrCreateRider(phone string) (*models.Rider, bool, error) {
	phone = validation.NormalizePhone(phone)
	rider, err := s.store.GetRiderByPhone(phone)
	if err == nil {
		return rider, false, nil
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, false, err
	}

	created, err := s.store.CreateRider(&models.Rider{Phone: phone})
	if err == nil {
		return created, true, nil
	}
	if _, isDup := apperrors.IsDuplicate(err); isDup {
		existing, err := s.store.GetRiderByPhone(phone)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return nil, false, err
}

// CheckDuplicates is the advisory pre-check clients run before submitting.
// The authoritative rejection still happens at write time under the store's
// unique constraints.
func (s *RegistrationService) CheckDuplicates(req *models.DuplicateCheckRequest) ([]string, error) {
	phone := req.Phone
	if phone != "" {
		phone = validation.NormalizePhone(phone)
	}
	return s.store.FindDuplicateDriverFields(phone, req.LicenseNo, req.Email)
}

// CompleteDriverProfile runs the one-shot profile step. On success a driver
// without a vehicle stays inactive (vehicle step pending); the account only
// becomes active at vehicle registration.
func (s *RegistrationService) CompleteDriverProfile(req *models.CompleteProfileRequest) (*models.Driver, error) {
	if req.DriverID == "" {
		return nil, apperrors.NewValidation("driverId", "is required")
	}

	// Injection screening runs over all free text before any field rule
	if validation.IsSuspicious(strings.Join([]string{req.Name, req.Email, req.Country}, " ")) {
		return nil, apperrors.ErrSuspiciousInput
	}

	name := validation.Sanitize(req.Name)
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if err := validation.License(req.LicenseNo); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := validation.Email(req.Email); err != nil {
			return nil, err
		}
	}

	if dup, err := s.store.FindDuplicateDriverFields("", req.LicenseNo, req.Email); err != nil {
		return nil, err
	} else if len(dup) > 0 {
		return nil, &apperrors.DuplicateError{Fields: dup}
	}

	return s.store.CompleteDriverProfile(req.DriverID, name, req.LicenseNo, req.Email, validation.Sanitize(req.Country))
}

// RegisterVehicle runs the driver's final provisioning step and activates
// the account.
func (s *RegistrationService) RegisterVehicle(req *models.RegisterVehicleRequest) (*models.Driver, error) {
	if req.DriverID == "" {
		return nil, apperrors.NewValidation("driverId", "is required")
	}
	if err := validation.VehicleNo(req.VehicleNo); err != nil {
		return nil, err
	}
	if !models.VehicleTypes[req.VehicleType] {
		return nil, apperrors.NewValidation("vehicleType", "must be Electric, Petrol, Diesel or Hybrid")
	}

	// Steps are ordered: an account never activates with an empty profile.
	driver, err := s.store.GetDriverByID(req.DriverID)
	if err != nil {
		return nil, err
	}
	if !driver.ProfileCompleted() {
		return nil, apperrors.ErrProfileIncomplete
	}

	return s.store.RegisterDriverVehicle(req.DriverID, req.VehicleNo, req.VehicleType)
}

// CompleteRiderProfile runs the rider's one-shot signup step; riders go
// straight to active.
func (s *RegistrationService) CompleteRiderProfile(req *models.RiderSignupRequest) (*models.Rider, error) {
	if req.RiderID == "" {
		return nil, apperrors.NewValidation("userId", "is required")
	}

	if validation.IsSuspicious(strings.Join([]string{req.Name, req.Email}, " ")) {
		return nil, apperrors.ErrSuspiciousInput
	}

	name := validation.Sanitize(req.Name)
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := validation.Email(req.Email); err != nil {
			return nil, err
		}
	}

	return s.store.CompleteRiderProfile(req.RiderID, name, req.Email)
}

// UpdateDriverProfile applies the mutable profile fields. Name, license,
// vehicle and phone are immutable here; status may only move between active
// and busy once the driver finished provisioning.
func (s *RegistrationService) UpdateDriverProfile(driverID string, req *models.UpdateProfileRequest) (*models.Driver, error) {
	driver, err := s.store.GetDriverByID(driverID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != "" {
		if err := validation.Email(*req.Email); err != nil {
			return nil, err
		}
		if dup, err := s.store.FindDuplicateDriverFields("", "", *req.Email); err != nil {
			return nil, err
		} else if len(dup) > 0 && (driver.Email == nil || *driver.Email != *req.Email) {
			return nil, &apperrors.DuplicateError{Fields: dup}
		}
		driver.Email = req.Email
	}
	if req.Country != nil {
		driver.Country = validation.Sanitize(*req.Country)
	}
	if req.Status != nil {
		switch *req.Status {
		case models.DriverStatusActive, models.DriverStatusBusy:
			if !driver.VehicleRegistered() {
				return nil, apperrors.NewValidation("status", "driver has not completed registration")
			}
			driver.Status = *req.Status
		default:
			return nil, apperrors.NewValidation("status", "must be active or busy")
		}
	}

	if err := s.store.UpdateDriver(driver); err != nil {
		return nil, err
	}
	return s.store.GetDriverByID(driverID)
}
