package vehicles

import "github.com/Conversly/community-api/internal/types"

type VehicleRequest struct {
	// ResidentID is required when an admin registers a vehicle; residents
	// always register their own.
	ResidentID         string            `json:"residentId"`
	RegistrationNumber string            `json:"registrationNumber" binding:"required,min=4,max=20"`
	Type               types.VehicleType `json:"type" binding:"required,oneof=two_wheeler four_wheeler other"`
	Make               string            `json:"make" binding:"max=60"`
	Color              string            `json:"color" binding:"max=30"`
	ParkingSlot        string            `json:"parkingSlot" binding:"max=20"`
}
