package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const guestColumns = "id, community_id, resident_id, name, phone, purpose, vehicle_number, status, qr_token, expected_at, valid_until, checked_in_at, checked_out_at, created_by, created_at, updated_at"

func (s *Store) CreateGuest(ctx context.Context, g types.Guest) (types.Guest, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO guests (id, community_id, resident_id, name, phone, purpose, vehicle_number, status, qr_token,
		                    expected_at, valid_until, checked_in_at, checked_out_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.CommunityID, g.ResidentID, g.Name, g.Phone, g.Purpose, g.VehicleNumber, g.Status, g.QRToken,
		g.ExpectedAt, g.ValidUntil, g.CheckedInAt, g.CheckedOutAt, g.CreatedBy, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return types.Guest{}, err
	}
	return g, nil
}

func (s *Store) GetGuest(ctx context.Context, communityID, id string) (types.Guest, error) {
	var g types.Guest
	err := s.get(ctx, &g, "SELECT "+guestColumns+" FROM guests WHERE community_id = ? AND id = ?", communityID, id)
	return g, err
}

func (s *Store) GetGuestByToken(ctx context.Context, communityID, token string) (types.Guest, error) {
	var g types.Guest
	err := s.get(ctx, &g, "SELECT "+guestColumns+" FROM guests WHERE community_id = ? AND qr_token = ?", communityID, token)
	return g, err
}

func (s *Store) ListGuests(ctx context.Context, communityID string, gf types.GuestFilter, p types.Pagination) ([]types.Guest, int, error) {
	f := scoped(communityID).eq("status", string(gf.Status)).eq("resident_id", gf.ResidentID)
	if gf.From != nil {
		f.add("expected_at >= ?", *gf.From)
	}
	if gf.To != nil {
		f.add("expected_at < ?", *gf.To)
	}
	return page[types.Guest](ctx, s, guestColumns, "guests", f, "expected_at DESC", p)
}

// MarkGuestCheckedIn keeps the first check-in time across re-entries. A pass
// that was cancelled or checked out reports ErrNotFound.
func (s *Store) MarkGuestCheckedIn(ctx context.Context, communityID, id string, at time.Time) error {
	return s.execOne(ctx, `
		UPDATE guests SET status = ?, checked_in_at = COALESCE(checked_in_at, ?), updated_at = now()
		WHERE community_id = ? AND id = ? AND status IN (?, ?)
	`, types.GuestCheckedIn, at, communityID, id, types.GuestExpected, types.GuestCheckedIn)
}

func (s *Store) MarkGuestCheckedOut(ctx context.Context, communityID, id string, at time.Time) error {
	return s.execOne(ctx, `
		UPDATE guests SET status = ?, checked_out_at = ?, updated_at = now()
		WHERE community_id = ? AND id = ?
	`, types.GuestCheckedOut, at, communityID, id)
}

// CancelGuest only cancels a pass nobody has used yet.
func (s *Store) CancelGuest(ctx context.Context, communityID, id string) error {
	return s.execOne(ctx, `
		UPDATE guests SET status = ?, updated_at = now()
		WHERE community_id = ? AND id = ? AND status = ?
	`, types.GuestCancelled, communityID, id, types.GuestExpected)
}
