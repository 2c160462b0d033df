package announcements

import "time"

type AnnouncementRequest struct {
	Title     string     `json:"title" binding:"required,max=150"`
	Body      string     `json:"body" binding:"required,max=5000"`
	Category  string     `json:"category" binding:"omitempty,oneof=general maintenance event emergency"`
	Pinned    bool       `json:"pinned"`
	ExpiresAt *time.Time `json:"expiresAt"`
}
