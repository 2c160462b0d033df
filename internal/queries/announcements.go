package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const announcementColumns = "id, community_id, title, body, category, pinned, expires_at, created_by, created_at, updated_at"

func (s *Store) CreateAnnouncement(ctx context.Context, a types.Announcement) (types.Announcement, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO announcements (id, community_id, title, body, category, pinned, expires_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.CommunityID, a.Title, a.Body, a.Category, a.Pinned, a.ExpiresAt, a.CreatedBy, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return types.Announcement{}, err
	}
	return a, nil
}

func (s *Store) GetAnnouncement(ctx context.Context, communityID, id string) (types.Announcement, error) {
	var a types.Announcement
	err := s.get(ctx, &a, "SELECT "+announcementColumns+" FROM announcements WHERE community_id = ? AND id = ?", communityID, id)
	return a, err
}

// ListAnnouncements returns the announcements that have not expired at now,
// pinned ones first.
func (s *Store) ListAnnouncements(ctx context.Context, communityID string, now time.Time, p types.Pagination) ([]types.Announcement, int, error) {
	f := scoped(communityID).add("(expires_at IS NULL OR expires_at > ?)", now)
	return page[types.Announcement](ctx, s, announcementColumns, "announcements", f, "pinned DESC, created_at DESC", p)
}

func (s *Store) UpdateAnnouncement(ctx context.Context, a types.Announcement) (types.Announcement, error) {
	a.UpdatedAt = time.Now().UTC()
	err := s.execOne(ctx, `
		UPDATE announcements SET title = ?, body = ?, category = ?, pinned = ?, expires_at = ?, updated_at = ?
		WHERE community_id = ? AND id = ?
	`, a.Title, a.Body, a.Category, a.Pinned, a.ExpiresAt, a.UpdatedAt, a.CommunityID, a.ID)
	if err != nil {
		return types.Announcement{}, err
	}
	return s.GetAnnouncement(ctx, a.CommunityID, a.ID)
}

func (s *Store) DeleteAnnouncement(ctx context.Context, communityID, id string) error {
	return s.deleteScoped(ctx, "announcements", communityID, id)
}
