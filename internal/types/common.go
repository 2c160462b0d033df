package types

import (
	"time"
)

// ====== ENUMS ======

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleSecurity   Role = "security"
	RoleResident   Role = "resident"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSecurity, RoleResident:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountPending   AccountStatus = "pending"
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
)

// ====== REQUEST / RESPONSE TYPES ======

type ErrorResponse struct {
	Error     string                 `json:"error"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ListResponse is the envelope returned by every paginated list endpoint.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// NewList builds a ListResponse, never returning a nil Data slice.
func NewList[T any](items []T, p Pagination, total int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Page: p.Page, Limit: p.Limit, Total: total}
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID      string
	Email       string
	Role        Role
	CommunityID string
	SubjectID   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

func (p Principal) IsStaff() bool {
	return p.IsAdmin() || p.Role == RoleSecurity
}

// OwnsResident reports whether the principal is the resident with the given id.
func (p Principal) OwnsResident(residentID string) bool {
	return p.Role == RoleResident && p.SubjectID != "" && p.SubjectID == residentID
}
