package communities

import (
	"context"
	"strings"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"go.uber.org/zap"
)

type Store interface {
	CreateCommunity(ctx context.Context, c types.Community) (types.Community, error)
	GetCommunity(ctx context.Context, id string) (types.Community, error)
	ListCommunities(ctx context.Context, search string, p types.Pagination) ([]types.Community, int, error)
	UpdateCommunity(ctx context.Context, c types.Community) (types.Community, error)
	SetCommunityStatus(ctx context.Context, id string, status types.CommunityStatus) error
	CreateUser(ctx context.Context, u types.User) (types.User, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, req CreateCommunityRequest) (types.Community, error) {
	community, err := s.store.CreateCommunity(ctx, types.Community{
		Name:    strings.TrimSpace(req.Name),
		Code:    req.Code,
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Status:  types.CommunityActive,
	})
	if err != nil {
		return types.Community{}, shared.StoreError(err, "community with this code")
	}
	utils.Zlog.Info("Community created", zap.String("communityId", community.ID), zap.String("code", community.Code))
	return community, nil
}

func (s *Service) Get(ctx context.Context, id string) (types.Community, error) {
	community, err := s.store.GetCommunity(ctx, id)
	return community, shared.StoreError(err, "community")
}

func (s *Service) List(ctx context.Context, search string, p types.Pagination) (types.ListResponse[types.Community], error) {
	items, total, err := s.store.ListCommunities(ctx, search, p)
	if err != nil {
		return types.ListResponse[types.Community]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateCommunityRequest) (types.Community, error) {
	community, err := s.store.UpdateCommunity(ctx, types.Community{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
	})
	return community, shared.StoreError(err, "community")
}

// SetStatus deactivating a community locks out all of its users at their
// next request.
func (s *Service) SetStatus(ctx context.Context, id string, status types.CommunityStatus) (types.Community, error) {
	if err := s.store.SetCommunityStatus(ctx, id, status); err != nil {
		return types.Community{}, shared.StoreError(err, "community")
	}
	utils.Zlog.Info("Community status changed", zap.String("communityId", id), zap.String("status", string(status)))
	return s.Get(ctx, id)
}

func (s *Service) CreateAdmin(ctx context.Context, communityID string, req CreateAdminRequest) (types.User, error) {
	if _, err := s.store.GetCommunity(ctx, communityID); err != nil {
		return types.User{}, shared.StoreError(err, "community")
	}
	hash, err := shared.HashPassword(req.Password)
	if err != nil {
		return types.User{}, err
	}
	user, err := s.store.CreateUser(ctx, types.User{
		CommunityID:  &communityID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         types.RoleAdmin,
		Status:       types.AccountActive,
	})
	if err != nil {
		return types.User{}, shared.StoreError(err, "user with this email")
	}
	return user, nil
}
