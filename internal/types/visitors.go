package types

import "time"

// ====== GUESTS ======

type GuestStatus string

const (
	GuestExpected   GuestStatus = "expected"
	GuestCheckedIn  GuestStatus = "checked_in"
	GuestCheckedOut GuestStatus = "checked_out"
	GuestCancelled  GuestStatus = "cancelled"
)

// GuestPassValidity is how long a pre-registered pass stays usable after the expected arrival.
const GuestPassValidity = 24 * time.Hour

type Guest struct {
	ID            string      `db:"id" json:"id"`
	CommunityID   string      `db:"community_id" json:"communityId"`
	ResidentID    string      `db:"resident_id" json:"residentId"`
	Name          string      `db:"name" json:"name"`
	Phone         string      `db:"phone" json:"phone"`
	Purpose       string      `db:"purpose" json:"purpose"`
	VehicleNumber string      `db:"vehicle_number" json:"vehicleNumber,omitempty"`
	Status        GuestStatus `db:"status" json:"status"`
	QRToken       string      `db:"qr_token" json:"-"`
	ExpectedAt    time.Time   `db:"expected_at" json:"expectedAt"`
	ValidUntil    time.Time   `db:"valid_until" json:"validUntil"`
	CheckedInAt   *time.Time  `db:"checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt  *time.Time  `db:"checked_out_at" json:"checkedOutAt,omitempty"`
	CreatedBy     string      `db:"created_by" json:"createdBy"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
}

type GuestFilter struct {
	Status     GuestStatus
	ResidentID string
	From       *time.Time
	To         *time.Time
}

// ====== DELIVERIES ======

type DeliveryStatus string

const (
	DeliveryReceived  DeliveryStatus = "received"
	DeliveryCollected DeliveryStatus = "collected"
	DeliveryReturned  DeliveryStatus = "returned"
)

type Delivery struct {
	ID             string         `db:"id" json:"id"`
	CommunityID    string         `db:"community_id" json:"communityId"`
	ResidentID     string         `db:"resident_id" json:"residentId"`
	Company        string         `db:"company" json:"company"`
	DeliveryPerson string         `db:"delivery_person" json:"deliveryPerson"`
	Phone          string         `db:"phone" json:"phone"`
	PackageCount   int            `db:"package_count" json:"packageCount"`
	Notes          string         `db:"notes" json:"notes,omitempty"`
	Status         DeliveryStatus `db:"status" json:"status"`
	ReceivedBy     string         `db:"received_by" json:"receivedBy"`
	ReceivedAt     time.Time      `db:"received_at" json:"receivedAt"`
	ClosedAt       *time.Time     `db:"closed_at" json:"closedAt,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

type DeliveryFilter struct {
	Status     DeliveryStatus
	ResidentID string
}
