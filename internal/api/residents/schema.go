package residents

import (
	"time"

	"github.com/Conversly/community-api/internal/types"
)

type CreateResidentRequest struct {
	Name       string          `json:"name" binding:"required,max=120"`
	Email      string          `json:"email" binding:"required,email"`
	Phone      string          `json:"phone" binding:"required,phone"`
	Block      string          `json:"block" binding:"required,max=20"`
	FlatNumber string          `json:"flatNumber" binding:"required,max=20"`
	Ownership  types.Ownership `json:"ownership" binding:"required,oneof=owner tenant"`
	MoveInDate *time.Time      `json:"moveInDate"`
	// Password, when set, creates an active login for the resident.
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

type UpdateResidentRequest struct {
	Name       string          `json:"name" binding:"required,max=120"`
	Email      string          `json:"email" binding:"required,email"`
	Phone      string          `json:"phone" binding:"required,phone"`
	Block      string          `json:"block" binding:"required,max=20"`
	FlatNumber string          `json:"flatNumber" binding:"required,max=20"`
	Ownership  types.Ownership `json:"ownership" binding:"required,oneof=owner tenant"`
	MoveInDate *time.Time      `json:"moveInDate"`
}

type StatusRequest struct {
	Status types.ResidentStatus `json:"status" binding:"required,oneof=pending active rejected inactive"`
}
