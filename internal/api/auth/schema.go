package auth

import (
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
)

type RegisterRequest struct {
	CommunityCode string          `json:"communityCode" binding:"required,code"`
	Name          string          `json:"name" binding:"required,max=120"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone" binding:"required,phone"`
	Password      string          `json:"password" binding:"required,min=8,max=72"`
	Block         string          `json:"block" binding:"required,max=20"`
	FlatNumber    string          `json:"flatNumber" binding:"required,max=20"`
	Ownership     types.Ownership `json:"ownership" binding:"required,oneof=owner tenant"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

type LoginResponse struct {
	shared.TokenPair
	User types.User `json:"user"`
}

type RegisterResponse struct {
	Resident types.Resident `json:"resident"`
	Message  string         `json:"message"`
}

type MeResponse struct {
	User       types.User `json:"user"`
	ResidentID string     `json:"residentId,omitempty"`
	EmployeeID string     `json:"employeeId,omitempty"`
}
