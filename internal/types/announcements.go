package types

import "time"

type Announcement struct {
	ID          string     `db:"id" json:"id"`
	CommunityID string     `db:"community_id" json:"communityId"`
	Title       string     `db:"title" json:"title"`
	Body        string     `db:"body" json:"body"`
	Category    string     `db:"category" json:"category"`
	Pinned      bool       `db:"pinned" json:"pinned"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expiresAt,omitempty"`
	CreatedBy   string     `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
