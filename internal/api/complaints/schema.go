package complaints

import "github.com/Conversly/community-api/internal/types"

type CreateComplaintRequest struct {
	Category    types.ComplaintCategory `json:"category" binding:"required,oneof=plumbing electrical security cleanliness parking noise other"`
	Title       string                  `json:"title" binding:"required,max=150"`
	Description string                  `json:"description" binding:"required,max=2000"`
	Priority    types.Priority          `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type StatusRequest struct {
	Status types.ComplaintStatus `json:"status" binding:"required,oneof=open in_progress resolved closed rejected"`
	Note   string                `json:"note" binding:"max=1000"`
}

type AssignRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

type CommentRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}
