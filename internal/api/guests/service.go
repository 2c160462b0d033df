package guests

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
	CreateGuest(ctx context.Context, g types.Guest) (types.Guest, error)
	GetGuest(ctx context.Context, communityID, id string) (types.Guest, error)
	ListGuests(ctx context.Context, communityID string, gf types.GuestFilter, p types.Pagination) ([]types.Guest, int, error)
	CancelGuest(ctx context.Context, communityID, id string) error
	WithPersonLock(ctx context.Context, communityID string, personType types.PersonType, personID string, fn func(queries.GateWriter) error) error
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc, now: time.Now}
}

func (s *Service) host(ctx context.Context, communityID string, principal types.Principal, requested string) (types.Resident, error) {
	residentID := requested
	if principal.Role == types.RoleResident {
		residentID = principal.SubjectID
	}
	if residentID == "" {
		return types.Resident{}, utils.BadRequest("residentId is required")
	}
	resident, err := s.store.GetResident(ctx, communityID, residentID)
	if err != nil {
		return types.Resident{}, shared.StoreError(err, "resident")
	}
	if resident.Status != types.ResidentActive {
		return types.Resident{}, utils.Forbidden("resident is not active")
	}
	return resident, nil
}

// Create pre-registers a guest. The pass is valid from now until a day
// after the expected arrival.
func (s *Service) Create(ctx context.Context, communityID string, principal types.Principal, req CreateGuestRequest) (types.Guest, error) {
	resident, err := s.host(ctx, communityID, principal, req.ResidentID)
	if err != nil {
		return types.Guest{}, err
	}
	validUntil := req.ExpectedAt.Add(types.GuestPassValidity)
	if !validUntil.After(s.now()) {
		return types.Guest{}, utils.BadRequest("expectedAt is too far in the past")
	}

	guest, err := s.store.CreateGuest(ctx, types.Guest{
		CommunityID:   communityID,
		ResidentID:    resident.ID,
		Name:          strings.TrimSpace(req.Name),
		Phone:         req.Phone,
		Purpose:       strings.TrimSpace(req.Purpose),
		VehicleNumber: strings.ToUpper(strings.TrimSpace(req.VehicleNumber)),
		Status:        types.GuestExpected,
		QRToken:       shared.NewGateToken(types.PersonGuest),
		ExpectedAt:    req.ExpectedAt.UTC(),
		ValidUntil:    validUntil.UTC(),
		CreatedBy:     principal.UserID,
	})
	if err != nil {
		return types.Guest{}, shared.StoreError(err, "guest")
	}
	return guest, nil
}

// WalkIn registers an unannounced guest at the gate and records their entry
// in the same step.
func (s *Service) WalkIn(ctx context.Context, communityID string, principal types.Principal, req WalkInRequest) (types.ScanResult, error) {
	resident, err := s.host(ctx, communityID, principal, req.ResidentID)
	if err != nil {
		return types.ScanResult{}, err
	}
	now := s.now().UTC()
	guest, err := s.store.CreateGuest(ctx, types.Guest{
		CommunityID:   communityID,
		ResidentID:    resident.ID,
		Name:          strings.TrimSpace(req.Name),
		Phone:         req.Phone,
		Purpose:       strings.TrimSpace(req.Purpose),
		VehicleNumber: strings.ToUpper(strings.TrimSpace(req.VehicleNumber)),
		Status:        types.GuestExpected,
		QRToken:       shared.NewGateToken(types.PersonGuest),
		ExpectedAt:    now,
		ValidUntil:    now.Add(types.GuestPassValidity),
		CreatedBy:     principal.UserID,
	})
	if err != nil {
		return types.ScanResult{}, shared.StoreError(err, "guest")
	}

	var entry types.GateEntry
	err = s.store.WithPersonLock(ctx, communityID, types.PersonGuest, guest.ID, func(w queries.GateWriter) error {
		var err error
		entry, err = w.CreateGateEntry(ctx, types.GateEntry{
			CommunityID: communityID,
			PersonType:  types.PersonGuest,
			PersonID:    guest.ID,
			PersonName:  guest.Name,
			Direction:   types.DirectionEntry,
			Gate:        strings.TrimSpace(req.Gate),
			Method:      types.EntryMethodWalkIn,
			Note:        "visiting " + resident.Block + "-" + resident.FlatNumber,
			ScannedBy:   principal.UserID,
		})
		if err != nil {
			return err
		}
		return w.MarkGuestCheckedIn(ctx, communityID, guest.ID, now)
	})
	if err != nil {
		return types.ScanResult{}, err
	}
	shared.RecordGateScan(string(types.PersonGuest), string(types.DirectionEntry), "walk_in")
	utils.Zlog.Info("Walk-in guest admitted",
		zap.String("communityId", communityID),
		zap.String("guestId", guest.ID),
		zap.String("residentId", resident.ID))

	return types.ScanResult{
		Entry: entry,
		Person: types.Person{
			Type:   types.PersonGuest,
			ID:     guest.ID,
			Name:   guest.Name,
			Detail: "guest of " + resident.Name,
		},
	}, nil
}

func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Guest, error) {
	guest, err := s.store.GetGuest(ctx, communityID, id)
	if err != nil {
		return types.Guest{}, shared.StoreError(err, "guest")
	}
	if err := shared.CheckResidentAccess(principal, guest.ResidentID); err != nil {
		return types.Guest{}, err
	}
	return guest, nil
}

// List narrows to one calendar day in the community's zone when day is set.
func (s *Service) List(ctx context.Context, communityID string, principal types.Principal, filter types.GuestFilter, day *time.Time, p types.Pagination) (types.ListResponse[types.Guest], error) {
	filter.ResidentID = shared.ResidentFilter(principal, filter.ResidentID)
	if day != nil {
		start := types.DateOnly(day.In(s.loc))
		end := start.AddDate(0, 0, 1)
		filter.From, filter.To = &start, &end
	}
	items, total, err := s.store.ListGuests(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Guest]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) QRCode(ctx context.Context, communityID string, principal types.Principal, id string) ([]byte, error) {
	guest, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return nil, err
	}
	if guest.Status == types.GuestCancelled || guest.Status == types.GuestCheckedOut {
		return nil, utils.Conflict("guest pass is no longer valid")
	}
	return shared.QRCodePNG(guest.QRToken)
}

// Cancel withdraws a pass that has not been used yet.
func (s *Service) Cancel(ctx context.Context, communityID string, principal types.Principal, id string) (types.Guest, error) {
	guest, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return types.Guest{}, err
	}
	if principal.Role == types.RoleSecurity {
		return types.Guest{}, utils.Forbidden("only the host or an admin can cancel a pass")
	}
	if guest.Status != types.GuestExpected {
		return types.Guest{}, utils.Conflict("guest is %s and can no longer be cancelled", guest.Status)
	}
	if err := s.store.CancelGuest(ctx, communityID, id); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Guest{}, utils.Conflict("guest can no longer be cancelled")
		}
		return types.Guest{}, err
	}
	guest.Status = types.GuestCancelled
	return guest, nil
}
