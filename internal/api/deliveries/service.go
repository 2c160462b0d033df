package deliveries

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

type Store interface {
	GetResident(ctx context.Context, communityID, id string) (types.Resident, error)
	CreateDelivery(ctx context.Context, d types.Delivery) (types.Delivery, error)
	GetDelivery(ctx context.Context, communityID, id string) (types.Delivery, error)
	ListDeliveries(ctx context.Context, communityID string, df types.DeliveryFilter, p types.Pagination) ([]types.Delivery, int, error)
	CloseDelivery(ctx context.Context, communityID, id string, status types.DeliveryStatus, at time.Time) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Create(ctx context.Context, communityID string, principal types.Principal, req CreateDeliveryRequest) (types.Delivery, error) {
	resident, err := s.store.GetResident(ctx, communityID, req.ResidentID)
	if err != nil {
		return types.Delivery{}, shared.StoreError(err, "resident")
	}
	if resident.Status != types.ResidentActive {
		return types.Delivery{}, utils.BadRequest("resident is not active")
	}
	count := req.PackageCount
	if count == 0 {
		count = 1
	}

	delivery, err := s.store.CreateDelivery(ctx, types.Delivery{
		CommunityID:    communityID,
		ResidentID:     resident.ID,
		Company:        strings.TrimSpace(req.Company),
		DeliveryPerson: strings.TrimSpace(req.DeliveryPerson),
		Phone:          req.Phone,
		PackageCount:   count,
		Notes:          strings.TrimSpace(req.Notes),
		Status:         types.DeliveryReceived,
		ReceivedBy:     principal.UserID,
		ReceivedAt:     s.now().UTC(),
	})
	if err != nil {
		return types.Delivery{}, shared.StoreError(err, "delivery")
	}
	utils.Zlog.Info("Delivery received",
		zap.String("communityId", communityID),
		zap.String("deliveryId", delivery.ID),
		zap.String("residentId", resident.ID))
	return delivery, nil
}

func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Delivery, error) {
	delivery, err := s.store.GetDelivery(ctx, communityID, id)
	if err != nil {
		return types.Delivery{}, shared.StoreError(err, "delivery")
	}
	if err := shared.CheckResidentAccess(principal, delivery.ResidentID); err != nil {
		return types.Delivery{}, err
	}
	return delivery, nil
}

func (s *Service) List(ctx context.Context, communityID string, principal types.Principal, filter types.DeliveryFilter, p types.Pagination) (types.ListResponse[types.Delivery], error) {
	filter.ResidentID = shared.ResidentFilter(principal, filter.ResidentID)
	items, total, err := s.store.ListDeliveries(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Delivery]{}, err
	}
	return types.NewList(items, p, total), nil
}

// SetStatus closes a received delivery. The owning resident may only mark
// it collected; returning a parcel is a gate decision.
func (s *Service) SetStatus(ctx context.Context, communityID string, principal types.Principal, id string, status types.DeliveryStatus) (types.Delivery, error) {
	delivery, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return types.Delivery{}, err
	}
	if !principal.IsStaff() && status != types.DeliveryCollected {
		return types.Delivery{}, utils.Forbidden("residents can only mark deliveries collected")
	}
	if delivery.Status != types.DeliveryReceived {
		return types.Delivery{}, utils.Conflict("delivery is already %s", delivery.Status)
	}

	now := s.now().UTC()
	if err := s.store.CloseDelivery(ctx, communityID, id, status, now); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Delivery{}, utils.Conflict("delivery is no longer pending")
		}
		return types.Delivery{}, err
	}
	delivery.Status = status
	delivery.ClosedAt = &now
	return delivery, nil
}
