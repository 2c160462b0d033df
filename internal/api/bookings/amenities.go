package bookings

import (
	"context"
	"errors"
	"strings"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
)

func amenityFrom(req AmenityRequest) (types.Amenity, error) {
	if req.OpenTime >= req.CloseTime {
		return types.Amenity{}, utils.BadRequest("openTime must be before closeTime")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}
	return types.Amenity{
		Name:             strings.TrimSpace(req.Name),
		Description:      strings.TrimSpace(req.Description),
		Capacity:         capacity,
		OpenTime:         req.OpenTime,
		CloseTime:        req.CloseTime,
		RequiresApproval: req.RequiresApproval,
		Active:           active,
	}, nil
}

func (s *Service) CreateAmenity(ctx context.Context, communityID string, req AmenityRequest) (types.Amenity, error) {
	amenity, err := amenityFrom(req)
	if err != nil {
		return types.Amenity{}, err
	}
	amenity.CommunityID = communityID

	amenity, err = s.store.CreateAmenity(ctx, amenity)
	if err != nil {
		return types.Amenity{}, shared.StoreError(err, "amenity")
	}
	return amenity, nil
}

func (s *Service) GetAmenity(ctx context.Context, communityID string, principal types.Principal, id string) (types.Amenity, error) {
	amenity, err := s.store.GetAmenity(ctx, communityID, id)
	if err != nil {
		return types.Amenity{}, shared.StoreError(err, "amenity")
	}
	if !amenity.Active && !principal.IsAdmin() {
		return types.Amenity{}, utils.NotFound("amenity")
	}
	return amenity, nil
}

// ListAmenities hides inactive amenities from everyone but admins.
func (s *Service) ListAmenities(ctx context.Context, communityID string, principal types.Principal) ([]types.Amenity, error) {
	return s.store.ListAmenities(ctx, communityID, !principal.IsAdmin())
}

func (s *Service) UpdateAmenity(ctx context.Context, communityID, id string, req AmenityRequest) (types.Amenity, error) {
	amenity, err := amenityFrom(req)
	if err != nil {
		return types.Amenity{}, err
	}
	amenity.CommunityID, amenity.ID = communityID, id

	amenity, err = s.store.UpdateAmenity(ctx, amenity)
	if err != nil {
		return types.Amenity{}, shared.StoreError(err, "amenity")
	}
	return amenity, nil
}

func (s *Service) DeleteAmenity(ctx context.Context, communityID, id string) error {
	err := s.store.DeleteAmenity(ctx, communityID, id)
	if errors.Is(err, queries.ErrReference) {
		return utils.Conflict("amenity has bookings, deactivate it instead")
	}
	return shared.StoreError(err, "amenity")
}
