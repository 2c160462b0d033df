package providers

import (
	"context"
	"strings"
	"time"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
)

type Store interface {
	CreateProvider(ctx context.Context, p types.ServiceProvider) (types.ServiceProvider, error)
	GetProvider(ctx context.Context, communityID, id string) (types.ServiceProvider, error)
	ListProviders(ctx context.Context, communityID string, pf types.ProviderFilter, p types.Pagination) ([]types.ServiceProvider, int, error)
	UpdateProvider(ctx context.Context, p types.ServiceProvider) (types.ServiceProvider, error)
	SetProviderStatus(ctx context.Context, communityID, id string, status types.ProviderStatus) error
	RotateProviderToken(ctx context.Context, communityID, id, token string) error
	DeleteProvider(ctx context.Context, communityID, id string) error
}

const duplicateProvider = "service provider with this phone"

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// checkValidUntil rejects an access window that has already closed. An
// unchanged window on an expired provider is left alone so other fields
// stay editable.
func (s *Service) checkValidUntil(requested, current *time.Time) error {
	if requested == nil {
		return nil
	}
	if current != nil && current.Equal(*requested) {
		return nil
	}
	if !requested.After(s.now()) {
		return utils.BadRequest("validUntil must be in the future")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, communityID string, req ProviderRequest) (types.ServiceProvider, error) {
	if err := s.checkValidUntil(req.ValidUntil, nil); err != nil {
		return types.ServiceProvider{}, err
	}
	provider, err := s.store.CreateProvider(ctx, types.ServiceProvider{
		CommunityID: communityID,
		Name:        strings.TrimSpace(req.Name),
		Company:     strings.TrimSpace(req.Company),
		ServiceType: req.ServiceType,
		Phone:       req.Phone,
		Status:      types.ProviderActive,
		QRToken:     shared.NewGateToken(types.PersonProvider),
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		return types.ServiceProvider{}, shared.StoreError(err, duplicateProvider)
	}
	return provider, nil
}

func (s *Service) Get(ctx context.Context, communityID, id string) (types.ServiceProvider, error) {
	provider, err := s.store.GetProvider(ctx, communityID, id)
	return provider, shared.StoreError(err, "service provider")
}

func (s *Service) List(ctx context.Context, communityID string, filter types.ProviderFilter, p types.Pagination) (types.ListResponse[types.ServiceProvider], error) {
	items, total, err := s.store.ListProviders(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.ServiceProvider]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Update(ctx context.Context, communityID, id string, req ProviderRequest) (types.ServiceProvider, error) {
	existing, err := s.Get(ctx, communityID, id)
	if err != nil {
		return types.ServiceProvider{}, err
	}
	if err := s.checkValidUntil(req.ValidUntil, existing.ValidUntil); err != nil {
		return types.ServiceProvider{}, err
	}
	provider, err := s.store.UpdateProvider(ctx, types.ServiceProvider{
		ID:          id,
		CommunityID: communityID,
		Name:        strings.TrimSpace(req.Name),
		Company:     strings.TrimSpace(req.Company),
		ServiceType: req.ServiceType,
		Phone:       req.Phone,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		return types.ServiceProvider{}, shared.StoreError(err, duplicateProvider)
	}
	return provider, nil
}

// SetStatus blocking a provider denies them at the gate from the next scan.
func (s *Service) SetStatus(ctx context.Context, communityID, id string, status types.ProviderStatus) (types.ServiceProvider, error) {
	if err := s.store.SetProviderStatus(ctx, communityID, id, status); err != nil {
		return types.ServiceProvider{}, shared.StoreError(err, "service provider")
	}
	return s.Get(ctx, communityID, id)
}

func (s *Service) Delete(ctx context.Context, communityID, id string) error {
	return shared.StoreError(s.store.DeleteProvider(ctx, communityID, id), "service provider")
}

func (s *Service) QRCode(ctx context.Context, communityID, id string) ([]byte, error) {
	provider, err := s.Get(ctx, communityID, id)
	if err != nil {
		return nil, err
	}
	return shared.QRCodePNG(provider.QRToken)
}

func (s *Service) RotateQR(ctx context.Context, communityID, id string) ([]byte, error) {
	token := shared.NewGateToken(types.PersonProvider)
	if err := s.store.RotateProviderToken(ctx, communityID, id, token); err != nil {
		return nil, shared.StoreError(err, "service provider")
	}
	return shared.QRCodePNG(token)
}
