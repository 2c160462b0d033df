package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
)

func (s *Store) CountResidentsByStatus(ctx context.Context, communityID string) ([]types.StatusCount, error) {
	return s.countByStatus(ctx, "residents", communityID)
}

func (s *Store) CountComplaintsByStatus(ctx context.Context, communityID string) ([]types.StatusCount, error) {
	return s.countByStatus(ctx, "complaints", communityID)
}

func (s *Store) countByStatus(ctx context.Context, table, communityID string) ([]types.StatusCount, error) {
	counts := []types.StatusCount{}
	err := s.selectAll(ctx, &counts, "SELECT status, count(*) AS count FROM "+table+" WHERE community_id = ? GROUP BY status ORDER BY status", communityID)
	return counts, err
}

// CommunityCounters computes the admin tiles for the day [dayStart, dayEnd).
func (s *Store) CommunityCounters(ctx context.Context, communityID string, dayStart, dayEnd time.Time) (types.CommunityCounters, error) {
	var c types.CommunityCounters
	err := s.get(ctx, &c, `
		SELECT
			(SELECT count(*) FROM employees WHERE community_id = ? AND status = 'active') AS active_employees,
			(SELECT count(*) FROM service_providers WHERE community_id = ? AND status = 'active') AS active_providers,
			(SELECT count(*) FROM vehicles WHERE community_id = ?) AS vehicles,
			(SELECT count(*) FROM guests WHERE community_id = ? AND status = 'expected' AND expected_at >= ? AND expected_at < ?) AS guests_expected,
			(SELECT count(*) FROM (
				SELECT DISTINCT ON (person_type, person_id) direction
				FROM gate_entries
				WHERE community_id = ?
				ORDER BY person_type, person_id, created_at DESC
			) latest WHERE direction = 'entry') AS inside_now,
			(SELECT count(*) FROM gate_entries WHERE community_id = ? AND direction = 'entry' AND created_at >= ? AND created_at < ?) AS entries_today,
			(SELECT count(*) FROM bookings WHERE community_id = ? AND status = 'pending') AS pending_bookings,
			(SELECT count(*) FROM deliveries WHERE community_id = ? AND status = 'received') AS pending_deliveries
	`, communityID, communityID, communityID,
		communityID, dayStart, dayEnd,
		communityID,
		communityID, dayStart, dayEnd,
		communityID, communityID)
	return c, err
}

func (s *Store) ResidentCounters(ctx context.Context, communityID, residentID string) (types.ResidentCounters, error) {
	var c types.ResidentCounters
	err := s.get(ctx, &c, `
		SELECT
			(SELECT count(*) FROM complaints WHERE community_id = ? AND resident_id = ? AND status IN ('open', 'in_progress')) AS open_complaints,
			(SELECT count(*) FROM deliveries WHERE community_id = ? AND resident_id = ? AND status = 'received') AS pending_deliveries
	`, communityID, residentID, communityID, residentID)
	return c, err
}

// ListUpcomingGuests returns the resident's expected guests whose pass is still valid at now.
func (s *Store) ListUpcomingGuests(ctx context.Context, communityID, residentID string, now time.Time, limit int) ([]types.Guest, error) {
	guests := []types.Guest{}
	err := s.selectAll(ctx, &guests, `
		SELECT `+guestColumns+` FROM guests
		WHERE community_id = ? AND resident_id = ? AND status = ? AND valid_until > ?
		ORDER BY expected_at
		LIMIT ?
	`, communityID, residentID, types.GuestExpected, now, limit)
	return guests, err
}
