package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"go.uber.org/zap"
)

const clockLayout = "15:04"

type Store interface {
	GetResident(ctx context.Context, communityID, id string) (types.Resident, error)

	CreateAmenity(ctx context.Context, a types.Amenity) (types.Amenity, error)
	GetAmenity(ctx context.Context, communityID, id string) (types.Amenity, error)
	ListAmenities(ctx context.Context, communityID string, activeOnly bool) ([]types.Amenity, error)
	UpdateAmenity(ctx context.Context, a types.Amenity) (types.Amenity, error)
	DeleteAmenity(ctx context.Context, communityID, id string) error

	CreateBooking(ctx context.Context, b types.Booking) (types.Booking, error)
	GetBooking(ctx context.Context, communityID, id string) (types.Booking, error)
	ListBookings(ctx context.Context, communityID string, bf types.BookingFilter, p types.Pagination) ([]types.Booking, int, error)
	HasOverlap(ctx context.Context, amenityID string, start, end time.Time) (bool, error)
	TransitionBooking(ctx context.Context, communityID, id string, to types.BookingStatus, decidedBy string, from ...types.BookingStatus) error
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc, now: time.Now}
}

// checkSlot validates a slot against the amenity's opening hours, read in
// the community's zone. A slot may not cross midnight.
func (s *Service) checkSlot(amenity types.Amenity, start, end time.Time) error {
	if !end.After(start) {
		return utils.BadRequest("endsAt must be after startsAt")
	}
	if !start.After(s.now()) {
		return utils.BadRequest("startsAt must be in the future")
	}
	start, end = start.In(s.loc), end.In(s.loc)
	if start.Format(time.DateOnly) != end.Format(time.DateOnly) {
		return utils.BadRequest("a booking must start and end on the same day")
	}
	if start.Format(clockLayout) < amenity.OpenTime || end.Format(clockLayout) > amenity.CloseTime {
		return utils.BadRequest("%s is open from %s to %s", amenity.Name, amenity.OpenTime, amenity.CloseTime)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, communityID string, principal types.Principal, req CreateBookingRequest) (types.Booking, error) {
	residentID := req.ResidentID
	if principal.Role == types.RoleResident {
		residentID = principal.SubjectID
	}
	if residentID == "" {
		return types.Booking{}, utils.BadRequest("residentId is required")
	}
	resident, err := s.store.GetResident(ctx, communityID, residentID)
	if err != nil {
		return types.Booking{}, shared.StoreError(err, "resident")
	}
	if resident.Status != types.ResidentActive {
		return types.Booking{}, utils.Forbidden("resident is not active")
	}

	amenity, err := s.store.GetAmenity(ctx, communityID, req.AmenityID)
	if err != nil {
		return types.Booking{}, shared.StoreError(err, "amenity")
	}
	if !amenity.Active {
		return types.Booking{}, utils.BadRequest("%s is not available for booking", amenity.Name)
	}
	if err := s.checkSlot(amenity, req.StartsAt, req.EndsAt); err != nil {
		return types.Booking{}, err
	}

	overlap, err := s.store.HasOverlap(ctx, amenity.ID, req.StartsAt, req.EndsAt)
	if err != nil {
		return types.Booking{}, err
	}
	if overlap {
		return types.Booking{}, utils.Conflict("%s is already booked for that time", amenity.Name)
	}

	status := types.BookingApproved
	if amenity.RequiresApproval {
		status = types.BookingPending
	}
	booking, err := s.store.CreateBooking(ctx, types.Booking{
		CommunityID: communityID,
		AmenityID:   amenity.ID,
		ResidentID:  resident.ID,
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      req.EndsAt.UTC(),
		Status:      status,
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return types.Booking{}, shared.StoreError(err, "booking")
	}
	utils.Zlog.Info("Booking created",
		zap.String("communityId", communityID),
		zap.String("bookingId", booking.ID),
		zap.String("amenityId", amenity.ID),
		zap.String("status", string(status)))
	return booking, nil
}

func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Booking, error) {
	booking, err := s.store.GetBooking(ctx, communityID, id)
	if err != nil {
		return types.Booking{}, shared.StoreError(err, "booking")
	}
	if err := shared.CheckResidentAccess(principal, booking.ResidentID); err != nil {
		return types.Booking{}, err
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context, communityID string, principal types.Principal, filter types.BookingFilter, p types.Pagination) (types.ListResponse[types.Booking], error) {
	filter.ResidentID = shared.ResidentFilter(principal, filter.ResidentID)
	items, total, err := s.store.ListBookings(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Booking]{}, err
	}
	return types.NewList(items, p, total), nil
}

// Decide approves or rejects a pending booking.
func (s *Service) Decide(ctx context.Context, communityID string, principal types.Principal, id string, status types.BookingStatus) (types.Booking, error) {
	booking, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return types.Booking{}, err
	}
	if booking.Status != types.BookingPending {
		return types.Booking{}, utils.Conflict("booking is already %s", booking.Status)
	}
	if err := s.store.TransitionBooking(ctx, communityID, id, status, principal.UserID, types.BookingPending); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Booking{}, utils.Conflict("booking is no longer pending")
		}
		return types.Booking{}, err
	}
	booking.Status = status
	booking.DecidedBy = &principal.UserID
	return booking, nil
}

// Cancel releases a booking that has not started yet.
func (s *Service) Cancel(ctx context.Context, communityID string, principal types.Principal, id string) (types.Booking, error) {
	booking, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return types.Booking{}, err
	}
	if !principal.IsAdmin() && !principal.OwnsResident(booking.ResidentID) {
		return types.Booking{}, utils.Forbidden("only the owner or an admin can cancel a booking")
	}
	if !booking.Status.Holds() {
		return types.Booking{}, utils.Conflict("booking is already %s", booking.Status)
	}
	if !s.now().Before(booking.StartsAt) {
		return types.Booking{}, utils.Conflict("booking has already started")
	}

	err = s.store.TransitionBooking(ctx, communityID, id, types.BookingCancelled, "", types.BookingPending, types.BookingApproved)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Booking{}, utils.Conflict("booking can no longer be cancelled")
		}
		return types.Booking{}, err
	}
	booking.Status = types.BookingCancelled
	return booking, nil
}
