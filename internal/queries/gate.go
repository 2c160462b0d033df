package queries

import (
	"context"
	"errors"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const gateEntryColumns = "id, community_id, person_type, person_id, person_name, direction, gate, method, note, scanned_by, created_at"

// GateWriter is the part of the store a gate toggle runs against while it
// holds the person's lock.
type GateWriter interface {
	LastGateEntry(ctx context.Context, communityID string, personType types.PersonType, personID string) (*types.GateEntry, error)
	CreateGateEntry(ctx context.Context, e types.GateEntry) (types.GateEntry, error)
	MarkGuestCheckedIn(ctx context.Context, communityID, id string, at time.Time) error
	MarkGuestCheckedOut(ctx context.Context, communityID, id string, at time.Time) error
}

var _ GateWriter = (*Store)(nil)

// WithPersonLock runs fn in a transaction holding an advisory lock keyed on
// the person, so two scans of the same card cannot both read the same last entry.
func (s *Store) WithPersonLock(ctx context.Context, communityID string, personType types.PersonType, personID string, fn func(GateWriter) error) error {
	return s.inTx(ctx, func(tx *Store) error {
		key := communityID + ":" + string(personType) + ":" + personID
		if _, err := tx.exec(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", key); err != nil {
			return err
		}
		return fn(tx)
	})
}

// LastGateEntry returns nil when the person has never been scanned.
func (s *Store) LastGateEntry(ctx context.Context, communityID string, personType types.PersonType, personID string) (*types.GateEntry, error) {
	var e types.GateEntry
	err := s.get(ctx, &e, `
		SELECT `+gateEntryColumns+` FROM gate_entries
		WHERE community_id = ? AND person_type = ? AND person_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, communityID, personType, personID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateGateEntry records a pass. created_at is stamped by the database
// while the person's lock is held, so entry order never depends on the
// caller's clock; e.CreatedAt is ignored.
func (s *Store) CreateGateEntry(ctx context.Context, e types.GateEntry) (types.GateEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	err := s.get(ctx, &e.CreatedAt, `
		INSERT INTO gate_entries (id, community_id, person_type, person_id, person_name, direction, gate, method, note, scanned_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, clock_timestamp())
		RETURNING created_at
	`, e.ID, e.CommunityID, e.PersonType, e.PersonID, e.PersonName, e.Direction, e.Gate, e.Method, e.Note, e.ScannedBy)
	if err != nil {
		return types.GateEntry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func (s *Store) ListGateEntries(ctx context.Context, communityID string, gf types.GateEntryFilter, p types.Pagination) ([]types.GateEntry, int, error) {
	f := scoped(communityID).
		eq("person_type", string(gf.PersonType)).
		eq("person_id", gf.PersonID).
		eq("direction", string(gf.Direction))
	if gf.From != nil {
		f.add("created_at >= ?", *gf.From)
	}
	if gf.To != nil {
		f.add("created_at < ?", *gf.To)
	}
	return page[types.GateEntry](ctx, s, gateEntryColumns, "gate_entries", f, "created_at DESC", p)
}

// ListInside returns the latest entry of everyone whose last scan was an entry.
func (s *Store) ListInside(ctx context.Context, communityID string) ([]types.GateEntry, error) {
	entries := []types.GateEntry{}
	err := s.selectAll(ctx, &entries, `
		SELECT `+gateEntryColumns+` FROM (
			SELECT DISTINCT ON (person_type, person_id) `+gateEntryColumns+`
			FROM gate_entries
			WHERE community_id = ?
			ORDER BY person_type, person_id, created_at DESC
		) latest
		WHERE direction = ?
		ORDER BY created_at DESC
	`, communityID, types.DirectionEntry)
	return entries, err
}
