package types

import "time"

type Amenity struct {
	ID               string    `db:"id" json:"id"`
	CommunityID      string    `db:"community_id" json:"communityId"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description"`
	Capacity         int       `db:"capacity" json:"capacity"`
	OpenTime         string    `db:"open_time" json:"openTime"`
	CloseTime        string    `db:"close_time" json:"closeTime"`
	RequiresApproval bool      `db:"requires_approval" json:"requiresApproval"`
	Active           bool      `db:"active" json:"active"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Holds reports whether a booking in this status reserves its slot.
func (s BookingStatus) Holds() bool {
	return s == BookingPending || s == BookingApproved
}

type Booking struct {
	ID          string        `db:"id" json:"id"`
	CommunityID string        `db:"community_id" json:"communityId"`
	AmenityID   string        `db:"amenity_id" json:"amenityId"`
	ResidentID  string        `db:"resident_id" json:"residentId"`
	StartsAt    time.Time     `db:"starts_at" json:"startsAt"`
	EndsAt      time.Time     `db:"ends_at" json:"endsAt"`
	Status      BookingStatus `db:"status" json:"status"`
	Notes       string        `db:"notes" json:"notes,omitempty"`
	DecidedBy   *string       `db:"decided_by" json:"decidedBy,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

type BookingFilter struct {
	AmenityID  string
	ResidentID string
	Status     BookingStatus
	From       *time.Time
	To         *time.Time
}
