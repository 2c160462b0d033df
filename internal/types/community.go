package types

import "time"

type CommunityStatus string

const (
	CommunityActive   CommunityStatus = "active"
	CommunityInactive CommunityStatus = "inactive"
)

type Community struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Code      string          `db:"code" json:"code"`
	Address   string          `db:"address" json:"address"`
	City      string          `db:"city" json:"city"`
	Status    CommunityStatus `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// User is a login account. Residents and security guards link to their
// registry record through SubjectID.
type User struct {
	ID           string        `db:"id" json:"id"`
	CommunityID  *string       `db:"community_id" json:"communityId,omitempty"`
	Name         string        `db:"name" json:"name"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         Role          `db:"role" json:"role"`
	Status       AccountStatus `db:"status" json:"status"`
	SubjectID    *string       `db:"subject_id" json:"subjectId,omitempty"`
	LastLoginAt  *time.Time    `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

// Account is the view of a user the auth middleware needs on every request.
type Account struct {
	ID              string           `db:"id"`
	Email           string           `db:"email"`
	Role            Role             `db:"role"`
	Status          AccountStatus    `db:"status"`
	CommunityID     *string          `db:"community_id"`
	SubjectID       *string          `db:"subject_id"`
	CommunityStatus *CommunityStatus `db:"community_status"`
}
