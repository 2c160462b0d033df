package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const deliveryColumns = "id, community_id, resident_id, company, delivery_person, phone, package_count, notes, status, received_by, received_at, closed_at, created_at, updated_at"

func (s *Store) CreateDelivery(ctx context.Context, d types.Delivery) (types.Delivery, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = now
	}

	_, err := s.exec(ctx, `
		INSERT INTO deliveries (id, community_id, resident_id, company, delivery_person, phone, package_count, notes,
		                        status, received_by, received_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.CommunityID, d.ResidentID, d.Company, d.DeliveryPerson, d.Phone, d.PackageCount, d.Notes,
		d.Status, d.ReceivedBy, d.ReceivedAt, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return types.Delivery{}, err
	}
	return d, nil
}

func (s *Store) GetDelivery(ctx context.Context, communityID, id string) (types.Delivery, error) {
	var d types.Delivery
	err := s.get(ctx, &d, "SELECT "+deliveryColumns+" FROM deliveries WHERE community_id = ? AND id = ?", communityID, id)
	return d, err
}

func (s *Store) ListDeliveries(ctx context.Context, communityID string, df types.DeliveryFilter, p types.Pagination) ([]types.Delivery, int, error) {
	f := scoped(communityID).eq("status", string(df.Status)).eq("resident_id", df.ResidentID)
	return page[types.Delivery](ctx, s, deliveryColumns, "deliveries", f, "received_at DESC", p)
}

// CloseDelivery moves a received delivery to a final status. A delivery that
// was already closed reports ErrNotFound.
func (s *Store) CloseDelivery(ctx context.Context, communityID, id string, status types.DeliveryStatus, at time.Time) error {
	return s.execOne(ctx, `
		UPDATE deliveries SET status = ?, closed_at = ?, updated_at = now()
		WHERE community_id = ? AND id = ? AND status = ?
	`, status, at, communityID, id, types.DeliveryReceived)
}
