package providers

import (
	"time"

	"github.com/Conversly/community-api/internal/types"
)

type ProviderRequest struct {
	Name        string            `json:"name" binding:"required,max=120"`
	Company     string            `json:"company" binding:"max=120"`
	ServiceType types.ServiceType `json:"serviceType" binding:"required,oneof=plumber electrician carpenter cleaner pest_control internet other"`
	Phone       string            `json:"phone" binding:"required,phone"`
	ValidUntil  *time.Time        `json:"validUntil"`
}

type StatusRequest struct {
	Status types.ProviderStatus `json:"status" binding:"required,oneof=active blocked"`
}
