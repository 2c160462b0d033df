package types

import "time"

type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintClosed     ComplaintStatus = "closed"
	ComplaintRejected   ComplaintStatus = "rejected"
)

type ComplaintCategory string

const (
	CategoryPlumbing    ComplaintCategory = "plumbing"
	CategoryElectrical  ComplaintCategory = "electrical"
	CategorySecurity    ComplaintCategory = "security"
	CategoryCleanliness ComplaintCategory = "cleanliness"
	CategoryParking     ComplaintCategory = "parking"
	CategoryNoise       ComplaintCategory = "noise"
	CategoryOther       ComplaintCategory = "other"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Complaint struct {
	ID          string            `db:"id" json:"id"`
	CommunityID string            `db:"community_id" json:"communityId"`
	ResidentID  string            `db:"resident_id" json:"residentId"`
	Category    ComplaintCategory `db:"category" json:"category"`
	Title       string            `db:"title" json:"title"`
	Description string            `db:"description" json:"description"`
	Priority    Priority          `db:"priority" json:"priority"`
	Status      ComplaintStatus   `db:"status" json:"status"`
	AssignedTo  *string           `db:"assigned_to" json:"assignedTo,omitempty"`
	ResolvedAt  *time.Time        `db:"resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updatedAt"`

	Comments []ComplaintComment `db:"-" json:"comments,omitempty"`
}

type ComplaintComment struct {
	ID          string    `db:"id" json:"id"`
	ComplaintID string    `db:"complaint_id" json:"complaintId"`
	AuthorID    string    `db:"author_id" json:"authorId"`
	AuthorRole  Role      `db:"author_role" json:"authorRole"`
	Body        string    `db:"body" json:"body"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type ComplaintFilter struct {
	Status     ComplaintStatus
	Category   ComplaintCategory
	ResidentID string
}
