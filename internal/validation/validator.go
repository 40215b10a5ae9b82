// Package validation holds the pure field checks shared by the rider and
// driver registration flows. Every check is deterministic and side-effect
// free; handlers run them on every submit regardless of what the client
// already validated.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/apperrors"
)

var (
	nameRegex        = regexp.MustCompile(`^[a-zA-Z .'-]+$`)
	nonDigitRegex    = regexp.MustCompile(`\D`)
	phoneCharsRegex  = regexp.MustCompile(`^\+?[0-9 ()-]+$`)
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	licenseRegex     = regexp.MustCompile(`^[A-Z]{2}-?\d{2}-?\d{4}-?\d{7}$`)
	vehicleNoRegex   = regexp.MustCompile(`^[A-Z0-9]+([ -][A-Z0-9]+)*$`)
	timeOfDayRegex   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	passwordSymbols  = "!@#$%^&*()_+-=[]{};:,.<>?/|\\~`'\""
	indianFirstDigit = "6789"
)

// Name checks a person name: trimmed length 3-50, letters plus space,
// hyphen, apostrophe and period.
func Name(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 || len(trimmed) > 50 {
		return apperrors.NewValidation("name", "must be between 3 and 50 characters")
	}
	if !nameRegex.MatchString(trimmed) {
		return apperrors.NewValidation("name", "may only contain letters, spaces, hyphens, apostrophes and periods")
	}
	return nil
}

// Phone checks a phone number for the given calling code. Indian numbers
// (calling code 91) must be exactly 10 digits starting 6-9; any other region
// gets the general 7-15 digit bound.
func Phone(phone, callingCode string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return apperrors.NewValidation("phone_number", "is required")
	}
	// Only digits plus separator characters; anything else is rejected
	// rather than stripped.
	if !phoneCharsRegex.MatchString(trimmed) {
		return apperrors.NewValidation("phone_number", "may only contain digits, spaces, hyphens and parentheses")
	}
	digits := nonDigitRegex.ReplaceAllString(trimmed, "")

	if callingCode == "91" {
		if len(digits) != 10 {
			return apperrors.NewValidation("phone_number", "Indian phone numbers must be 10 digits")
		}
		if !strings.ContainsRune(indianFirstDigit, rune(digits[0])) {
			return apperrors.NewValidation("phone_number", "Indian phone numbers must start with 6-9")
		}
		return nil
	}

	if len(digits) < 7 {
		return apperrors.NewValidation("phone_number", "too short")
	}
	if len(digits) > 15 {
		return apperrors.NewValidation("phone_number", "too long")
	}
	return nil
}

// E164Phone checks an already-prefixed number like +919876543210. The
// calling code is read off the prefix so region rules still apply.
func E164Phone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if strings.HasPrefix(trimmed, "+91") {
		return Phone(strings.TrimPrefix(trimmed, "+91"), "91")
	}
	return Phone(trimmed, "")
}

// NormalizePhone returns the canonical E.164 form of a stored phone number.
// Bare national numbers default to India. Lookups and writes must both go
// through this so an account created from a bare number is found again.
func NormalizePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return "+91" + strings.TrimPrefix(trimmed, "91")
}

// Email checks a standard local@domain.tld shape. Email is optional; pass
// only non-empty values.
func Email(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return apperrors.NewValidation("email", "invalid email format")
	}
	return nil
}

// License checks a driving license: trimmed and upper-cased, 10-20
// characters, 2 letters + 2 digits + 4 digits + 7 digits with optional
// hyphens (e.g. KL-11-2017-0001234).
func License(license string) error {
	normalized := strings.ToUpper(strings.TrimSpace(license))
	if len(normalized) < 10 || len(normalized) > 20 {
		return apperrors.NewValidation("drinving_license", "must be between 10 and 20 characters")
	}
	if !licenseRegex.MatchString(normalized) {
		return apperrors.NewValidation("drinving_license", "must look like KL-11-2017-0001234")
	}
	return nil
}

// NormalizeLicense returns the canonical stored form of a license number.
func NormalizeLicense(license string) string {
	return strings.ToUpper(strings.TrimSpace(license))
}

// VehicleNo checks a vehicle registration number: alphanumeric groups
// optionally separated by hyphens or spaces, total length 3-15.
func VehicleNo(vehicleNo string) error {
	normalized := strings.ToUpper(strings.TrimSpace(vehicleNo))
	if len(normalized) < 3 || len(normalized) > 15 {
		return apperrors.NewValidation("vehicleNumber", "must be between 3 and 15 characters")
	}
	if !vehicleNoRegex.MatchString(normalized) {
		return apperrors.NewValidation("vehicleNumber", "may only contain letters, digits, hyphens and spaces")
	}
	return nil
}

// NormalizeVehicleNo returns the canonical stored form of a vehicle number.
func NormalizeVehicleNo(vehicleNo string) string {
	return strings.ToUpper(strings.TrimSpace(vehicleNo))
}

// Password checks length 8-50 and requires at least one uppercase letter,
// one lowercase letter, one digit and one symbol.
func Password(password string) error {
	if len(password) < 8 || len(password) > 50 {
		return apperrors.NewValidation("password", "must be between 8 and 50 characters")
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return apperrors.NewValidation("password", "must contain an uppercase letter, a lowercase letter, a digit and a symbol")
	}
	return nil
}

// ConfirmPassword checks the confirmation field against the password.
func ConfirmPassword(password, confirm string) error {
	if confirm == "" {
		return apperrors.NewValidation("confirm_password", "is required")
	}
	if confirm != password {
		return apperrors.NewValidation("confirm_password", "passwords do not match")
	}
	return nil
}

// TimeOfDay checks a 24h HH:MM string.
func TimeOfDay(value string) error {
	if !timeOfDayRegex.MatchString(strings.TrimSpace(value)) {
		return apperrors.NewValidation("time", "must be HH:MM in 24-hour format")
	}
	return nil
}

// TimeRange checks a departure/arrival pair on the same day: arrival must be
// strictly after departure and the duration must be between 5 minutes and 12
// hours.
func TimeRange(departure, arrival string) error {
	if err := TimeOfDay(departure); err != nil {
		return apperrors.NewValidation("departure_time", "must be HH:MM in 24-hour format")
	}
	if err := TimeOfDay(arrival); err != nil {
		return apperrors.NewValidation("arrival_time", "must be HH:MM in 24-hour format")
	}

	dep := minutesOfDay(departure)
	arr := minutesOfDay(arrival)
	duration := arr - dep
	if duration <= 0 {
		return apperrors.NewValidation("arrival_time", "must be after departure time")
	}
	if duration < 5 || duration > 720 {
		return apperrors.NewValidation("arrival_time", "trip duration must be between 5 minutes and 12 hours")
	}
	return nil
}

func minutesOfDay(hhmm string) int {
	var h, m int
	fmt.Sscanf(strings.TrimSpace(hhmm), "%d:%d", &h, &m)
	return h*60 + m
}
