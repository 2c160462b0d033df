package types

import "github.com/shopspring/decimal"

type AdminDashboard struct {
	Residents         map[ResidentStatus]int  `json:"residents"`
	ActiveEmployees   int                     `json:"activeEmployees"`
	ActiveProviders   int                     `json:"activeProviders"`
	Vehicles          int                     `json:"vehicles"`
	GuestsExpected    int                     `json:"guestsExpectedToday"`
	InsideNow         int                     `json:"insideNow"`
	EntriesToday      int                     `json:"entriesToday"`
	Complaints        map[ComplaintStatus]int `json:"complaints"`
	PendingBookings   int                     `json:"pendingBookings"`
	PendingDeliveries int                     `json:"pendingDeliveries"`
	Bills             BillSummary             `json:"bills"`
}

type ResidentDashboard struct {
	UnpaidTotal       decimal.Decimal `json:"unpaidTotal"`
	UnpaidBills       int             `json:"unpaidBills"`
	OpenComplaints    int             `json:"openComplaints"`
	PendingDeliveries int             `json:"pendingDeliveries"`
	UpcomingGuests    []Guest         `json:"upcomingGuests"`
	Announcements     []Announcement  `json:"announcements"`
}

// StatusCount is one row of a GROUP BY status query.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// CommunityCounters are the single-number tiles of the admin dashboard.
type CommunityCounters struct {
	ActiveEmployees   int `db:"active_employees"`
	ActiveProviders   int `db:"active_providers"`
	Vehicles          int `db:"vehicles"`
	GuestsExpected    int `db:"guests_expected"`
	InsideNow         int `db:"inside_now"`
	EntriesToday      int `db:"entries_today"`
	PendingBookings   int `db:"pending_bookings"`
	PendingDeliveries int `db:"pending_deliveries"`
}

type ResidentCounters struct {
	OpenComplaints    int `db:"open_complaints"`
	PendingDeliveries int `db:"pending_deliveries"`
}
