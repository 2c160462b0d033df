package types

import "time"

// ====== RESIDENTS ======

type ResidentStatus string

const (
	ResidentPending  ResidentStatus = "pending"
	ResidentActive   ResidentStatus = "active"
	ResidentRejected ResidentStatus = "rejected"
	ResidentInactive ResidentStatus = "inactive"
)

type Ownership string

const (
	OwnershipOwner  Ownership = "owner"
	OwnershipTenant Ownership = "tenant"
)

type Resident struct {
	ID          string         `db:"id" json:"id"`
	CommunityID string         `db:"community_id" json:"communityId"`
	Name        string         `db:"name" json:"name"`
	Email       string         `db:"email" json:"email"`
	Phone       string         `db:"phone" json:"phone"`
	Block       string         `db:"block" json:"block"`
	FlatNumber  string         `db:"flat_number" json:"flatNumber"`
	Ownership   Ownership      `db:"ownership" json:"ownership"`
	Status      ResidentStatus `db:"status" json:"status"`
	QRToken     string         `db:"qr_token" json:"-"`
	MoveInDate  *time.Time     `db:"move_in_date" json:"moveInDate,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

type ResidentFilter struct {
	Status ResidentStatus
	Block  string
	Search string
}

// ====== EMPLOYEES ======

type Designation string

const (
	DesignationSecurity     Designation = "security"
	DesignationHousekeeping Designation = "housekeeping"
	DesignationMaintenance  Designation = "maintenance"
	DesignationGardener     Designation = "gardener"
	DesignationManager      Designation = "manager"
	DesignationOther        Designation = "other"
)

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
	ShiftGeneral Shift = "general"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type Employee struct {
	ID          string         `db:"id" json:"id"`
	CommunityID string         `db:"community_id" json:"communityId"`
	Name        string         `db:"name" json:"name"`
	Phone       string         `db:"phone" json:"phone"`
	Email       *string        `db:"email" json:"email,omitempty"`
	Designation Designation    `db:"designation" json:"designation"`
	Shift       Shift          `db:"shift" json:"shift"`
	Status      EmployeeStatus `db:"status" json:"status"`
	QRToken     string         `db:"qr_token" json:"-"`
	JoinedOn    *time.Time     `db:"joined_on" json:"joinedOn,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

type EmployeeFilter struct {
	Status      EmployeeStatus
	Designation Designation
	Search      string
}

// ====== SERVICE PROVIDERS ======

type ServiceType string

const (
	ServicePlumber     ServiceType = "plumber"
	ServiceElectrician ServiceType = "electrician"
	ServiceCarpenter   ServiceType = "carpenter"
	ServiceCleaner     ServiceType = "cleaner"
	ServicePestControl ServiceType = "pest_control"
	ServiceInternet    ServiceType = "internet"
	ServiceOther       ServiceType = "other"
)

type ProviderStatus string

const (
	ProviderActive  ProviderStatus = "active"
	ProviderBlocked ProviderStatus = "blocked"
)

type ServiceProvider struct {
	ID          string         `db:"id" json:"id"`
	CommunityID string         `db:"community_id" json:"communityId"`
	Name        string         `db:"name" json:"name"`
	Company     string         `db:"company" json:"company"`
	ServiceType ServiceType    `db:"service_type" json:"serviceType"`
	Phone       string         `db:"phone" json:"phone"`
	Status      ProviderStatus `db:"status" json:"status"`
	QRToken     string         `db:"qr_token" json:"-"`
	ValidUntil  *time.Time     `db:"valid_until" json:"validUntil,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// Expired reports whether the provider's access window has passed.
func (p ServiceProvider) Expired(now time.Time) bool {
	return p.ValidUntil != nil && now.After(*p.ValidUntil)
}

type ProviderFilter struct {
	Status      ProviderStatus
	ServiceType ServiceType
	Search      string
}

// ====== VEHICLES ======

type VehicleType string

const (
	VehicleTwoWheeler  VehicleType = "two_wheeler"
	VehicleFourWheeler VehicleType = "four_wheeler"
	VehicleOther       VehicleType = "other"
)

type Vehicle struct {
	ID                 string      `db:"id" json:"id"`
	CommunityID        string      `db:"community_id" json:"communityId"`
	ResidentID         string      `db:"resident_id" json:"residentId"`
	RegistrationNumber string      `db:"registration_number" json:"registrationNumber"`
	Type               VehicleType `db:"type" json:"type"`
	Make               string      `db:"make" json:"make"`
	Color              string      `db:"color" json:"color"`
	ParkingSlot        string      `db:"parking_slot" json:"parkingSlot"`
	CreatedAt          time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updatedAt"`
}

// VehicleOwner is the gate lookup view of a vehicle.
type VehicleOwner struct {
	Vehicle
	ResidentName string `db:"resident_name" json:"residentName"`
	Block        string `db:"block" json:"block"`
	FlatNumber   string `db:"flat_number" json:"flatNumber"`
}
