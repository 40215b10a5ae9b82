package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Varshithreddy123/Live-Bus-Tracking-App/internal/validation"
)

// Rider status values
const (
	RiderStatusProvisional = "provisional"
	RiderStatusActive      = "active"
)

// Rider represents a passenger account. Created provisional on first OTP
// approval, active once the signup step sets the name.
type Rider struct {
	gorm.Model

	RiderID string  `json:"user_id" gorm:"uniqueIndex"`
	Phone   string  `json:"phone_number" gorm:"uniqueIndex;not null"`
	Name    string  `json:"name"`
	Email   *string `json:"email" gorm:"uniqueIndex"`
	Status  string  `json:"status" gorm:"default:provisional"` // provisional, active
}

func (r *Rider) BeforeCreate(tx *gorm.DB) error {
	if r.RiderID == "" {
		r.RiderID = "USR-" + uuid.NewString()
	}
	r.Phone = validation.NormalizePhone(r.Phone)
	if r.Status == "" {
		r.Status = RiderStatusProvisional
	}
	return nil
}

// ProfileCompleted reports whether the one-shot signup step already ran.
func (r *Rider) ProfileCompleted() bool {
	return r.Name != ""
}

// RiderSignupRequest is the payload for rider profile completion.
type RiderSignupRequest struct {
	RiderID string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}
