package vehicles

import (
	"context"
	"strings"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
)

type Store interface {
	GetResident(ctx context.Context, communityID, id string) (types.Resident, error)
	CreateVehicle(ctx context.Context, v types.Vehicle) (types.Vehicle, error)
	GetVehicle(ctx context.Context, communityID, id string) (types.Vehicle, error)
	GetVehicleByNumber(ctx context.Context, communityID, number string) (types.VehicleOwner, error)
	ListVehicles(ctx context.Context, communityID, residentID string, p types.Pagination) ([]types.Vehicle, int, error)
	UpdateVehicle(ctx context.Context, v types.Vehicle) (types.Vehicle, error)
	DeleteVehicle(ctx context.Context, communityID, id string) error
}

const duplicateVehicle = "vehicle with this registration number"

var registrationCleaner = strings.NewReplacer(" ", "", "-", "", ".", "")

// NormalizeRegistration upper-cases a plate and strips separators so
// "ka-01 ab 1234" and "KA01AB1234" are the same vehicle.
func NormalizeRegistration(number string) string {
	return strings.ToUpper(registrationCleaner.Replace(strings.TrimSpace(number)))
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// owner resolves whose vehicle a request is about.
func (s *Service) owner(ctx context.Context, communityID string, principal types.Principal, requested string) (string, error) {
	residentID := requested
	if principal.Role == types.RoleResident {
		residentID = principal.SubjectID
	}
	if residentID == "" {
		return "", utils.BadRequest("residentId is required")
	}
	if _, err := s.store.GetResident(ctx, communityID, residentID); err != nil {
		return "", shared.StoreError(err, "resident")
	}
	return residentID, nil
}

func (s *Service) Create(ctx context.Context, communityID string, principal types.Principal, req VehicleRequest) (types.Vehicle, error) {
	residentID, err := s.owner(ctx, communityID, principal, req.ResidentID)
	if err != nil {
		return types.Vehicle{}, err
	}
	vehicle, err := s.store.CreateVehicle(ctx, types.Vehicle{
		CommunityID:        communityID,
		ResidentID:         residentID,
		RegistrationNumber: NormalizeRegistration(req.RegistrationNumber),
		Type:               req.Type,
		Make:               strings.TrimSpace(req.Make),
		Color:              strings.TrimSpace(req.Color),
		ParkingSlot:        strings.TrimSpace(req.ParkingSlot),
	})
	if err != nil {
		return types.Vehicle{}, shared.StoreError(err, duplicateVehicle)
	}
	return vehicle, nil
}

// get loads a vehicle the principal may see.
func (s *Service) get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Vehicle, error) {
	vehicle, err := s.store.GetVehicle(ctx, communityID, id)
	if err != nil {
		return types.Vehicle{}, shared.StoreError(err, "vehicle")
	}
	if err := shared.CheckResidentAccess(principal, vehicle.ResidentID); err != nil {
		return types.Vehicle{}, err
	}
	return vehicle, nil
}

func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Vehicle, error) {
	return s.get(ctx, communityID, principal, id)
}

func (s *Service) List(ctx context.Context, communityID string, principal types.Principal, residentID string, p types.Pagination) (types.ListResponse[types.Vehicle], error) {
	items, total, err := s.store.ListVehicles(ctx, communityID, shared.ResidentFilter(principal, residentID), p)
	if err != nil {
		return types.ListResponse[types.Vehicle]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Update(ctx context.Context, communityID string, principal types.Principal, id string, req VehicleRequest) (types.Vehicle, error) {
	existing, err := s.get(ctx, communityID, principal, id)
	if err != nil {
		return types.Vehicle{}, err
	}
	existing.RegistrationNumber = NormalizeRegistration(req.RegistrationNumber)
	existing.Type = req.Type
	existing.Make = strings.TrimSpace(req.Make)
	existing.Color = strings.TrimSpace(req.Color)
	existing.ParkingSlot = strings.TrimSpace(req.ParkingSlot)

	vehicle, err := s.store.UpdateVehicle(ctx, existing)
	if err != nil {
		return types.Vehicle{}, shared.StoreError(err, duplicateVehicle)
	}
	return vehicle, nil
}

func (s *Service) Delete(ctx context.Context, communityID string, principal types.Principal, id string) error {
	if _, err := s.get(ctx, communityID, principal, id); err != nil {
		return err
	}
	return shared.StoreError(s.store.DeleteVehicle(ctx, communityID, id), "vehicle")
}

func (s *Service) Lookup(ctx context.Context, communityID, number string) (types.VehicleOwner, error) {
	owner, err := s.store.GetVehicleByNumber(ctx, communityID, NormalizeRegistration(number))
	return owner, shared.StoreError(err, "vehicle")
}
