package bookings

import (
	"time"

	"github.com/Conversly/community-api/internal/types"
)

type AmenityRequest struct {
	Name             string `json:"name" binding:"required,max=80"`
	Description      string `json:"description" binding:"max=500"`
	Capacity         int    `json:"capacity" binding:"omitempty,min=1,max=1000"`
	OpenTime         string `json:"openTime" binding:"required,clock"`
	CloseTime        string `json:"closeTime" binding:"required,clock"`
	RequiresApproval bool   `json:"requiresApproval"`
	Active           *bool  `json:"active"`
}

type CreateBookingRequest struct {
	AmenityID string `json:"amenityId" binding:"required"`
	// ResidentID is only read for admins booking on a resident's behalf.
	ResidentID string    `json:"residentId"`
	StartsAt   time.Time `json:"startsAt" binding:"required"`
	EndsAt     time.Time `json:"endsAt" binding:"required"`
	Notes      string    `json:"notes" binding:"max=500"`
}

type DecisionRequest struct {
	Status types.BookingStatus `json:"status" binding:"required,oneof=approved rejected"`
}
