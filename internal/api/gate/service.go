package gate

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

const (
	resultAllowed = "allowed"
	resultDenied  = "denied"
	resultUnknown = "unknown"
)

type Store interface {
	GetResident(ctx context.Context, communityID, id string) (types.Resident, error)
	GetResidentByToken(ctx context.Context, communityID, token string) (types.Resident, error)
	GetEmployee(ctx context.Context, communityID, id string) (types.Employee, error)
	GetEmployeeByToken(ctx context.Context, communityID, token string) (types.Employee, error)
	GetProvider(ctx context.Context, communityID, id string) (types.ServiceProvider, error)
	GetProviderByToken(ctx context.Context, communityID, token string) (types.ServiceProvider, error)
	GetGuest(ctx context.Context, communityID, id string) (types.Guest, error)
	GetGuestByToken(ctx context.Context, communityID, token string) (types.Guest, error)
	WithPersonLock(ctx context.Context, communityID string, personType types.PersonType, personID string, fn func(queries.GateWriter) error) error
	ListGateEntries(ctx context.Context, communityID string, gf types.GateEntryFilter, p types.Pagination) ([]types.GateEntry, int, error)
	ListInside(ctx context.Context, communityID string) ([]types.GateEntry, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc, now: time.Now}
}

// Scan resolves a QR token and records the person's next pass.
func (s *Service) Scan(ctx context.Context, communityID string, principal types.Principal, req ScanRequest) (types.ScanResult, error) {
	token := strings.TrimSpace(req.QRToken)
	personType, ok := shared.ParseGateToken(token)
	if !ok {
		shared.RecordGateScan("", "", resultUnknown)
		return types.ScanResult{}, utils.NotFound("gate token")
	}
	sub, err := s.byToken(ctx, communityID, personType, token)
	if err != nil {
		shared.RecordGateScan(string(personType), "", resultUnknown)
		return types.ScanResult{}, err
	}
	return s.pass(ctx, communityID, principal, sub, strings.TrimSpace(req.Gate), types.EntryMethodQR, "")
}

// Manual records a pass by id for someone without their code.
func (s *Service) Manual(ctx context.Context, communityID string, principal types.Principal, req ManualRequest) (types.ScanResult, error) {
	sub, err := s.byID(ctx, communityID, req.PersonType, req.PersonID)
	if err != nil {
		shared.RecordGateScan(string(req.PersonType), "", resultUnknown)
		return types.ScanResult{}, err
	}
	return s.pass(ctx, communityID, principal, sub, strings.TrimSpace(req.Gate), types.EntryMethodManual, strings.TrimSpace(req.Note))
}

// pass toggles the person's direction. The last entry is read and the new
// one written under the person's lock.
func (s *Service) pass(ctx context.Context, communityID string, principal types.Principal, sub subject, gate, method, note string) (types.ScanResult, error) {
	personType := string(sub.person.Type)
	if sub.denied != "" {
		shared.RecordGateScan(personType, "", resultDenied)
		utils.Zlog.Info("Gate pass denied",
			zap.String("communityId", communityID),
			zap.String("personType", personType),
			zap.String("personId", sub.person.ID),
			zap.String("reason", sub.denied))
		return types.ScanResult{}, utils.Forbidden(sub.denied)
	}

	var entry types.GateEntry
	err := s.store.WithPersonLock(ctx, communityID, sub.person.Type, sub.person.ID, func(w queries.GateWriter) error {
		now := s.now().UTC()
		last, err := w.LastGateEntry(ctx, communityID, sub.person.Type, sub.person.ID)
		if err != nil {
			return err
		}
		direction := types.NextDirection(last)

		if sub.guest != nil {
			if direction == types.DirectionEntry {
				err = w.MarkGuestCheckedIn(ctx, communityID, sub.guest.ID, now)
			} else {
				err = w.MarkGuestCheckedOut(ctx, communityID, sub.guest.ID, now)
			}
			if errors.Is(err, queries.ErrNotFound) {
				return utils.Forbidden("guest pass has already been used")
			}
			if err != nil {
				return err
			}
		}

		entry, err = w.CreateGateEntry(ctx, types.GateEntry{
			CommunityID: communityID,
			PersonType:  sub.person.Type,
			PersonID:    sub.person.ID,
			PersonName:  sub.person.Name,
			Direction:   direction,
			Gate:        gate,
			Method:      method,
			Note:        note,
			ScannedBy:   principal.UserID,
		})
		return err
	})
	if err != nil {
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) {
			shared.RecordGateScan(personType, "", resultDenied)
		}
		return types.ScanResult{}, err
	}

	shared.RecordGateScan(personType, string(entry.Direction), resultAllowed)
	utils.Zlog.Info("Gate pass recorded",
		zap.String("communityId", communityID),
		zap.String("personType", personType),
		zap.String("personId", sub.person.ID),
		zap.String("direction", string(entry.Direction)),
		zap.String("method", method))

	return types.ScanResult{Entry: entry, Person: sub.person}, nil
}

func (s *Service) Entries(ctx context.Context, communityID string, filter types.GateEntryFilter, p types.Pagination) (types.ListResponse[types.GateEntry], error) {
	if filter.PersonType != "" && !filter.PersonType.Valid() {
		return types.ListResponse[types.GateEntry]{}, utils.BadRequest("unknown person type %q", filter.PersonType)
	}
	items, total, err := s.store.ListGateEntries(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.GateEntry]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Inside(ctx context.Context, communityID string) (InsideResponse, error) {
	people, err := s.store.ListInside(ctx, communityID)
	if err != nil {
		return InsideResponse{}, err
	}
	return InsideResponse{Count: len(people), People: people}, nil
}
