package types

import "time"

type PersonType string

const (
	PersonResident PersonType = "resident"
	PersonEmployee PersonType = "employee"
	PersonProvider PersonType = "provider"
	PersonGuest    PersonType = "guest"
)

func (t PersonType) Valid() bool {
	switch t {
	case PersonResident, PersonEmployee, PersonProvider, PersonGuest:
		return true
	}
	return false
}

type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

// NextDirection toggles on the person's last recorded scan. A person with
// no history always enters first.
func NextDirection(last *GateEntry) Direction {
	if last != nil && last.Direction == DirectionEntry {
		return DirectionExit
	}
	return DirectionEntry
}

type GateEntry struct {
	ID          string     `db:"id" json:"id"`
	CommunityID string     `db:"community_id" json:"communityId"`
	PersonType  PersonType `db:"person_type" json:"personType"`
	PersonID    string     `db:"person_id" json:"personId"`
	PersonName  string     `db:"person_name" json:"personName"`
	Direction   Direction  `db:"direction" json:"direction"`
	Gate        string     `db:"gate" json:"gate"`
	Method      string     `db:"method" json:"method"`
	Note        string     `db:"note" json:"note,omitempty"`
	ScannedBy   string     `db:"scanned_by" json:"scannedBy"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

const (
	EntryMethodQR     = "qr"
	EntryMethodManual = "manual"
	EntryMethodWalkIn = "walk_in"
)

// Person is whoever a gate token resolved to.
type Person struct {
	Type   PersonType `json:"type"`
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Detail string     `json:"detail,omitempty"`
}

type GateEntryFilter struct {
	PersonType PersonType
	PersonID   string
	Direction  Direction
	From       *time.Time
	To         *time.Time
}

type ScanResult struct {
	Entry  GateEntry `json:"entry"`
	Person Person    `json:"person"`
}
