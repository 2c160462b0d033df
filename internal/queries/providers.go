package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const providerColumns = "id, community_id, name, company, service_type, phone, status, qr_token, valid_until, created_at, updated_at"

func (s *Store) CreateProvider(ctx context.Context, p types.ServiceProvider) (types.ServiceProvider, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO service_providers (id, community_id, name, company, service_type, phone, status, qr_token, valid_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CommunityID, p.Name, p.Company, p.ServiceType, p.Phone, p.Status, p.QRToken, p.ValidUntil, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return types.ServiceProvider{}, err
	}
	return p, nil
}

func (s *Store) GetProvider(ctx context.Context, communityID, id string) (types.ServiceProvider, error) {
	var p types.ServiceProvider
	err := s.get(ctx, &p, "SELECT "+providerColumns+" FROM service_providers WHERE community_id = ? AND id = ?", communityID, id)
	return p, err
}

func (s *Store) GetProviderByToken(ctx context.Context, communityID, token string) (types.ServiceProvider, error) {
	var p types.ServiceProvider
	err := s.get(ctx, &p, "SELECT "+providerColumns+" FROM service_providers WHERE community_id = ? AND qr_token = ?", communityID, token)
	return p, err
}

func (s *Store) ListProviders(ctx context.Context, communityID string, pf types.ProviderFilter, p types.Pagination) ([]types.ServiceProvider, int, error) {
	f := scoped(communityID).eq("status", string(pf.Status)).eq("service_type", string(pf.ServiceType))
	if pf.Search != "" {
		pattern := likePattern(pf.Search)
		f.add("(name ILIKE ? OR company ILIKE ? OR phone ILIKE ?)", pattern, pattern, pattern)
	}
	return page[types.ServiceProvider](ctx, s, providerColumns, "service_providers", f, "name", p)
}

func (s *Store) UpdateProvider(ctx context.Context, p types.ServiceProvider) (types.ServiceProvider, error) {
	p.UpdatedAt = time.Now().UTC()
	err := s.execOne(ctx, `
		UPDATE service_providers
		SET name = ?, company = ?, service_type = ?, phone = ?, valid_until = ?, updated_at = ?
		WHERE community_id = ? AND id = ?
	`, p.Name, p.Company, p.ServiceType, p.Phone, p.ValidUntil, p.UpdatedAt, p.CommunityID, p.ID)
	if err != nil {
		return types.ServiceProvider{}, err
	}
	return s.GetProvider(ctx, p.CommunityID, p.ID)
}

func (s *Store) SetProviderStatus(ctx context.Context, communityID, id string, status types.ProviderStatus) error {
	return s.setStatus(ctx, "service_providers", communityID, id, string(status))
}

func (s *Store) RotateProviderToken(ctx context.Context, communityID, id, token string) error {
	return s.rotateToken(ctx, "service_providers", communityID, id, token)
}

func (s *Store) DeleteProvider(ctx context.Context, communityID, id string) error {
	return s.deleteScoped(ctx, "service_providers", communityID, id)
}
