package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const (
	amenityColumns = "id, community_id, name, description, capacity, open_time, close_time, requires_approval, active, created_at, updated_at"
	bookingColumns = "id, community_id, amenity_id, resident_id, starts_at, ends_at, status, notes, decided_by, created_at, updated_at"
)

// ====== AMENITIES ======

func (s *Store) CreateAmenity(ctx context.Context, a types.Amenity) (types.Amenity, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO amenities (id, community_id, name, description, capacity, open_time, close_time, requires_approval, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.CommunityID, a.Name, a.Description, a.Capacity, a.OpenTime, a.CloseTime, a.RequiresApproval, a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return types.Amenity{}, err
	}
	return a, nil
}

func (s *Store) GetAmenity(ctx context.Context, communityID, id string) (types.Amenity, error) {
	var a types.Amenity
	err := s.get(ctx, &a, "SELECT "+amenityColumns+" FROM amenities WHERE community_id = ? AND id = ?", communityID, id)
	return a, err
}

func (s *Store) ListAmenities(ctx context.Context, communityID string, activeOnly bool) ([]types.Amenity, error) {
	f := scoped(communityID)
	if activeOnly {
		f.add("active = ?", true)
	}
	amenities := []types.Amenity{}
	err := s.selectAll(ctx, &amenities, "SELECT "+amenityColumns+" FROM amenities"+f.where()+" ORDER BY name", f.args...)
	return amenities, err
}

func (s *Store) UpdateAmenity(ctx context.Context, a types.Amenity) (types.Amenity, error) {
	a.UpdatedAt = time.Now().UTC()
	err := s.execOne(ctx, `
		UPDATE amenities
		SET name = ?, description = ?, capacity = ?, open_time = ?, close_time = ?, requires_approval = ?, active = ?, updated_at = ?
		WHERE community_id = ? AND id = ?
	`, a.Name, a.Description, a.Capacity, a.OpenTime, a.CloseTime, a.RequiresApproval, a.Active, a.UpdatedAt, a.CommunityID, a.ID)
	if err != nil {
		return types.Amenity{}, err
	}
	return s.GetAmenity(ctx, a.CommunityID, a.ID)
}

func (s *Store) DeleteAmenity(ctx context.Context, communityID, id string) error {
	return s.deleteScoped(ctx, "amenities", communityID, id)
}

// ====== BOOKINGS ======

func (s *Store) CreateBooking(ctx context.Context, b types.Booking) (types.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO bookings (id, community_id, amenity_id, resident_id, starts_at, ends_at, status, notes, decided_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.CommunityID, b.AmenityID, b.ResidentID, b.StartsAt, b.EndsAt, b.Status, b.Notes, b.DecidedBy, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return types.Booking{}, err
	}
	return b, nil
}

func (s *Store) GetBooking(ctx context.Context, communityID, id string) (types.Booking, error) {
	var b types.Booking
	err := s.get(ctx, &b, "SELECT "+bookingColumns+" FROM bookings WHERE community_id = ? AND id = ?", communityID, id)
	return b, err
}

func (s *Store) ListBookings(ctx context.Context, communityID string, bf types.BookingFilter, p types.Pagination) ([]types.Booking, int, error) {
	f := scoped(communityID).
		eq("amenity_id", bf.AmenityID).
		eq("resident_id", bf.ResidentID).
		eq("status", string(bf.Status))
	if bf.From != nil {
		f.add("ends_at > ?", *bf.From)
	}
	if bf.To != nil {
		f.add("starts_at < ?", *bf.To)
	}
	return page[types.Booking](ctx, s, bookingColumns, "bookings", f, "starts_at", p)
}

// HasOverlap reports whether a slot-holding booking of the amenity
// intersects [start, end).
func (s *Store) HasOverlap(ctx context.Context, amenityID string, start, end time.Time) (bool, error) {
	var exists bool
	err := s.get(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE amenity_id = ? AND status IN (?, ?) AND starts_at < ? AND ends_at > ?
		)
	`, amenityID, types.BookingPending, types.BookingApproved, end, start)
	return exists, err
}

// TransitionBooking changes the status of a booking that is currently in one
// of from. decidedBy is recorded when not empty.
func (s *Store) TransitionBooking(ctx context.Context, communityID, id string, to types.BookingStatus, decidedBy string, from ...types.BookingStatus) error {
	f := scoped(communityID).add("id = ?", id)
	if len(from) > 0 {
		in := make([]interface{}, len(from))
		for i, st := range from {
			in[i] = st
		}
		f.add("status IN ("+placeholders(len(from))+")", in...)
	}

	set := "status = ?, updated_at = now()"
	args := []interface{}{to}
	if decidedBy != "" {
		set += ", decided_by = ?"
		args = append(args, decidedBy)
	}
	args = append(args, f.args...)
	return s.execOne(ctx, "UPDATE bookings SET "+set+f.where(), args...)
}
