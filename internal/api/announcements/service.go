package announcements

import (
	"context"
	"strings"
	"time"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
)

const defaultCategory = "general"

type Store interface {
	CreateAnnouncement(ctx context.Context, a types.Announcement) (types.Announcement, error)
	GetAnnouncement(ctx context.Context, communityID, id string) (types.Announcement, error)
	ListAnnouncements(ctx context.Context, communityID string, now time.Time, p types.Pagination) ([]types.Announcement, int, error)
	UpdateAnnouncement(ctx context.Context, a types.Announcement) (types.Announcement, error)
	DeleteAnnouncement(ctx context.Context, communityID, id string) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) fromRequest(req AnnouncementRequest) (types.Announcement, error) {
	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return types.Announcement{}, utils.BadRequest("expiresAt must be in the future")
	}
	category := req.Category
	if category == "" {
		category = defaultCategory
	}
	a := types.Announcement{
		Title:    strings.TrimSpace(req.Title),
		Body:     strings.TrimSpace(req.Body),
		Category: category,
		Pinned:   req.Pinned,
	}
	if req.ExpiresAt != nil {
		expires := req.ExpiresAt.UTC()
		a.ExpiresAt = &expires
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, communityID string, principal types.Principal, req AnnouncementRequest) (types.Announcement, error) {
	a, err := s.fromRequest(req)
	if err != nil {
		return types.Announcement{}, err
	}
	a.CommunityID = communityID
	a.CreatedBy = principal.UserID

	a, err = s.store.CreateAnnouncement(ctx, a)
	if err != nil {
		return types.Announcement{}, shared.StoreError(err, "announcement")
	}
	return a, nil
}

// Get hides expired announcements from everyone but admins.
func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Announcement, error) {
	a, err := s.store.GetAnnouncement(ctx, communityID, id)
	if err != nil {
		return types.Announcement{}, shared.StoreError(err, "announcement")
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(s.now()) && !principal.IsAdmin() {
		return types.Announcement{}, utils.NotFound("announcement")
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, communityID string, p types.Pagination) (types.ListResponse[types.Announcement], error) {
	items, total, err := s.store.ListAnnouncements(ctx, communityID, s.now().UTC(), p)
	if err != nil {
		return types.ListResponse[types.Announcement]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Update(ctx context.Context, communityID, id string, req AnnouncementRequest) (types.Announcement, error) {
	a, err := s.fromRequest(req)
	if err != nil {
		return types.Announcement{}, err
	}
	a.CommunityID, a.ID = communityID, id

	a, err = s.store.UpdateAnnouncement(ctx, a)
	if err != nil {
		return types.Announcement{}, shared.StoreError(err, "announcement")
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, communityID, id string) error {
	return shared.StoreError(s.store.DeleteAnnouncement(ctx, communityID, id), "announcement")
}
