package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const vehicleColumns = "id, community_id, resident_id, registration_number, type, make, color, parking_slot, created_at, updated_at"

func (s *Store) CreateVehicle(ctx context.Context, v types.Vehicle) (types.Vehicle, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	v.CreatedAt, v.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO vehicles (id, community_id, resident_id, registration_number, type, make, color, parking_slot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.CommunityID, v.ResidentID, v.RegistrationNumber, v.Type, v.Make, v.Color, v.ParkingSlot, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return types.Vehicle{}, err
	}
	return v, nil
}

func (s *Store) GetVehicle(ctx context.Context, communityID, id string) (types.Vehicle, error) {
	var v types.Vehicle
	err := s.get(ctx, &v, "SELECT "+vehicleColumns+" FROM vehicles WHERE community_id = ? AND id = ?", communityID, id)
	return v, err
}

// GetVehicleByNumber looks a normalised registration number up together with its owner.
func (s *Store) GetVehicleByNumber(ctx context.Context, communityID, number string) (types.VehicleOwner, error) {
	var v types.VehicleOwner
	err := s.get(ctx, &v, `
		SELECT v.id, v.community_id, v.resident_id, v.registration_number, v.type, v.make, v.color, v.parking_slot,
		       v.created_at, v.updated_at, r.name AS resident_name, r.block, r.flat_number
		FROM vehicles v
		JOIN residents r ON r.id = v.resident_id
		WHERE v.community_id = ? AND v.registration_number = ?
	`, communityID, number)
	return v, err
}

func (s *Store) ListVehicles(ctx context.Context, communityID, residentID string, p types.Pagination) ([]types.Vehicle, int, error) {
	f := scoped(communityID).eq("resident_id", residentID)
	return page[types.Vehicle](ctx, s, vehicleColumns, "vehicles", f, "registration_number", p)
}

func (s *Store) UpdateVehicle(ctx context.Context, v types.Vehicle) (types.Vehicle, error) {
	v.UpdatedAt = time.Now().UTC()
	err := s.execOne(ctx, `
		UPDATE vehicles
		SET registration_number = ?, type = ?, make = ?, color = ?, parking_slot = ?, updated_at = ?
		WHERE community_id = ? AND id = ?
	`, v.RegistrationNumber, v.Type, v.Make, v.Color, v.ParkingSlot, v.UpdatedAt, v.CommunityID, v.ID)
	if err != nil {
		return types.Vehicle{}, err
	}
	return s.GetVehicle(ctx, v.CommunityID, v.ID)
}

func (s *Store) DeleteVehicle(ctx context.Context, communityID, id string) error {
	return s.deleteScoped(ctx, "vehicles", communityID, id)
}
