package communities

import "github.com/Conversly/community-api/internal/types"

type CreateCommunityRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Code    string `json:"code" binding:"required,code,max=40"`
	Address string `json:"address" binding:"max=255"`
	City    string `json:"city" binding:"required,max=80"`
}

type UpdateCommunityRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Address string `json:"address" binding:"max=255"`
	City    string `json:"city" binding:"required,max=80"`
}

type StatusRequest struct {
	Status types.CommunityStatus `json:"status" binding:"required,oneof=active inactive"`
}

type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}
