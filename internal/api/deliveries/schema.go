package deliveries

import "github.com/Conversly/community-api/internal/types"

type CreateDeliveryRequest struct {
	ResidentID     string `json:"residentId" binding:"required"`
	Company        string `json:"company" binding:"required,max=80"`
	DeliveryPerson string `json:"deliveryPerson" binding:"max=120"`
	Phone          string `json:"phone" binding:"omitempty,phone"`
	PackageCount   int    `json:"packageCount" binding:"omitempty,min=1,max=50"`
	Notes          string `json:"notes" binding:"max=500"`
}

type StatusRequest struct {
	Status types.DeliveryStatus `json:"status" binding:"required,oneof=collected returned"`
}
