package guests

import "time"

type CreateGuestRequest struct {
	// ResidentID is only read for admins registering on a resident's behalf.
	ResidentID    string    `json:"residentId"`
	Name          string    `json:"name" binding:"required,max=120"`
	Phone         string    `json:"phone" binding:"required,phone"`
	Purpose       string    `json:"purpose" binding:"max=200"`
	ExpectedAt    time.Time `json:"expectedAt" binding:"required"`
	VehicleNumber string    `json:"vehicleNumber" binding:"max=20"`
}

type WalkInRequest struct {
	ResidentID    string `json:"residentId" binding:"required"`
	Name          string `json:"name" binding:"required,max=120"`
	Phone         string `json:"phone" binding:"required,phone"`
	Purpose       string `json:"purpose" binding:"max=200"`
	VehicleNumber string `json:"vehicleNumber" binding:"max=20"`
	Gate          string `json:"gate" binding:"max=40"`
}
