package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillUnpaid  BillStatus = "unpaid"
	BillPaid    BillStatus = "paid"
	BillOverdue BillStatus = "overdue"
)

type Bill struct {
	ID            string          `db:"id" json:"id"`
	CommunityID   string          `db:"community_id" json:"communityId"`
	ResidentID    string          `db:"resident_id" json:"residentId"`
	Period        string          `db:"period" json:"period"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Description   string          `db:"description" json:"description"`
	DueDate       time.Time       `db:"due_date" json:"dueDate"`
	Status        BillStatus      `db:"status" json:"status"`
	PaidAt        *time.Time      `db:"paid_at" json:"paidAt,omitempty"`
	PaymentMethod *string         `db:"payment_method" json:"paymentMethod,omitempty"`
	PaymentRef    *string         `db:"payment_ref" json:"paymentRef,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// EffectiveStatus derives overdue from the stored status; nothing ever
// writes "overdue" to the table. now should be in the community's zone,
// the due date is a calendar day.
func (b Bill) EffectiveStatus(now time.Time) BillStatus {
	if b.Status == BillUnpaid && now.Format(time.DateOnly) > b.DueDate.Format(time.DateOnly) {
		return BillOverdue
	}
	return b.Status
}

type BillFilter struct {
	Status     BillStatus
	Period     string
	ResidentID string
	// Today is compared against due_date when Status is unpaid or overdue.
	Today time.Time
}

type BillSummary struct {
	Period      string          `json:"period,omitempty"`
	Count       int             `json:"count" db:"count"`
	PaidCount   int             `json:"paidCount" db:"paid_count"`
	Billed      decimal.Decimal `json:"billed" db:"billed"`
	Collected   decimal.Decimal `json:"collected" db:"collected"`
	Outstanding decimal.Decimal `json:"outstanding" db:"outstanding"`
	Overdue     decimal.Decimal `json:"overdue" db:"overdue"`
}

type GenerateResult struct {
	Period  string `json:"period"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
