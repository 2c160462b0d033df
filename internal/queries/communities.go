package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const communityColumns = "id, name, code, address, city, status, created_at, updated_at"

func (s *Store) CreateCommunity(ctx context.Context, c types.Community) (types.Community, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Status == "" {
		c.Status = types.CommunityActive
	}

	_, err := s.exec(ctx, `
		INSERT INTO communities (id, name, code, address, city, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Code, c.Address, c.City, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return types.Community{}, err
	}
	return c, nil
}

func (s *Store) GetCommunity(ctx context.Context, id string) (types.Community, error) {
	var c types.Community
	err := s.get(ctx, &c, "SELECT "+communityColumns+" FROM communities WHERE id = ?", id)
	return c, err
}

func (s *Store) GetCommunityByCode(ctx context.Context, code string) (types.Community, error) {
	var c types.Community
	err := s.get(ctx, &c, "SELECT "+communityColumns+" FROM communities WHERE code = ?", code)
	return c, err
}

func (s *Store) ListCommunities(ctx context.Context, search string, p types.Pagination) ([]types.Community, int, error) {
	f := &filter{}
	if search != "" {
		pattern := likePattern(search)
		f.add("(name ILIKE ? OR code ILIKE ? OR city ILIKE ?)", pattern, pattern, pattern)
	}
	return page[types.Community](ctx, s, communityColumns, "communities", f, "name", p)
}

func (s *Store) UpdateCommunity(ctx context.Context, c types.Community) (types.Community, error) {
	c.UpdatedAt = time.Now().UTC()
	err := s.execOne(ctx, `
		UPDATE communities SET name = ?, address = ?, city = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, c.Address, c.City, c.UpdatedAt, c.ID)
	if err != nil {
		return types.Community{}, err
	}
	return s.GetCommunity(ctx, c.ID)
}

func (s *Store) SetCommunityStatus(ctx context.Context, id string, status types.CommunityStatus) error {
	return s.execOne(ctx, "UPDATE communities SET status = ?, updated_at = now() WHERE id = ?", status, id)
}
