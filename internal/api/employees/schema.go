package employees

import (
	"time"

	"github.com/Conversly/community-api/internal/types"
)

type EmployeeRequest struct {
	Name        string            `json:"name" binding:"required,max=120"`
	Phone       string            `json:"phone" binding:"required,phone"`
	Email       string            `json:"email" binding:"omitempty,email"`
	Designation types.Designation `json:"designation" binding:"required,oneof=security housekeeping maintenance gardener manager other"`
	Shift       types.Shift       `json:"shift" binding:"required,oneof=morning evening night general"`
	JoinedOn    *time.Time        `json:"joinedOn"`
	// Password creates a security login; only allowed for security staff with an email.
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

type StatusRequest struct {
	Status types.EmployeeStatus `json:"status" binding:"required,oneof=active inactive"`
}
