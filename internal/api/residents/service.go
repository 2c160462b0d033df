package residents

import (
	"context"
	"errors"
	"strings"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"go.uber.org/zap"
)

type Store interface {
	CreateResident(ctx context.Context, r types.Resident, account *types.User) (types.Resident, error)
	GetResident(ctx context.Context, communityID, id string) (types.Resident, error)
	ListResidents(ctx context.Context, communityID string, rf types.ResidentFilter, p types.Pagination) ([]types.Resident, int, error)
	UpdateResident(ctx context.Context, r types.Resident) (types.Resident, error)
	SetResidentStatus(ctx context.Context, communityID, id string, status types.ResidentStatus, account types.AccountStatus) error
	RotateResidentToken(ctx context.Context, communityID, id, token string) error
	DeleteResident(ctx context.Context, communityID, id string) error
}

const duplicateResident = "resident with this email or phone"

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, communityID string, req CreateResidentRequest) (types.Resident, error) {
	resident := types.Resident{
		CommunityID: communityID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Block:       strings.TrimSpace(req.Block),
		FlatNumber:  strings.TrimSpace(req.FlatNumber),
		Ownership:   req.Ownership,
		Status:      types.ResidentActive,
		QRToken:     shared.NewGateToken(types.PersonResident),
		MoveInDate:  req.MoveInDate,
	}

	var account *types.User
	if req.Password != "" {
		hash, err := shared.HashPassword(req.Password)
		if err != nil {
			return types.Resident{}, err
		}
		account = &types.User{
			Name:         resident.Name,
			Email:        resident.Email,
			PasswordHash: hash,
			Role:         types.RoleResident,
			Status:       types.AccountActive,
		}
	}

	created, err := s.store.CreateResident(ctx, resident, account)
	if err != nil {
		return types.Resident{}, shared.StoreError(err, duplicateResident)
	}
	utils.Zlog.Info("Resident created",
		zap.String("communityId", communityID),
		zap.String("residentId", created.ID),
		zap.Bool("withLogin", account != nil))
	return created, nil
}

func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Resident, error) {
	if err := shared.CheckResidentAccess(principal, id); err != nil {
		return types.Resident{}, err
	}
	resident, err := s.store.GetResident(ctx, communityID, id)
	return resident, shared.StoreError(err, "resident")
}

func (s *Service) List(ctx context.Context, communityID string, filter types.ResidentFilter, p types.Pagination) (types.ListResponse[types.Resident], error) {
	items, total, err := s.store.ListResidents(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Resident]{}, err
	}
	return types.NewList(items, p, total), nil
}

func (s *Service) Update(ctx context.Context, communityID, id string, req UpdateResidentRequest) (types.Resident, error) {
	resident, err := s.store.UpdateResident(ctx, types.Resident{
		ID:          id,
		CommunityID: communityID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Block:       strings.TrimSpace(req.Block),
		FlatNumber:  strings.TrimSpace(req.FlatNumber),
		Ownership:   req.Ownership,
		MoveInDate:  req.MoveInDate,
	})
	if err != nil {
		return types.Resident{}, shared.StoreError(err, duplicateResident)
	}
	return resident, nil
}

// accountStatusFor maps a resident status onto the linked login.
func accountStatusFor(status types.ResidentStatus) types.AccountStatus {
	switch status {
	case types.ResidentActive:
		return types.AccountActive
	case types.ResidentPending:
		return types.AccountPending
	default:
		return types.AccountSuspended
	}
}

// SetStatus approves, rejects or deactivates a resident together with its login.
func (s *Service) SetStatus(ctx context.Context, communityID, id string, status types.ResidentStatus) (types.Resident, error) {
	if err := s.store.SetResidentStatus(ctx, communityID, id, status, accountStatusFor(status)); err != nil {
		return types.Resident{}, shared.StoreError(err, "resident")
	}
	utils.Zlog.Info("Resident status changed",
		zap.String("communityId", communityID),
		zap.String("residentId", id),
		zap.String("status", string(status)))
	resident, err := s.store.GetResident(ctx, communityID, id)
	return resident, shared.StoreError(err, "resident")
}

// Delete removes a resident. Residents with billing history cannot be
// deleted and should be set inactive instead.
func (s *Service) Delete(ctx context.Context, communityID, id string) error {
	err := s.store.DeleteResident(ctx, communityID, id)
	if errors.Is(err, queries.ErrReference) {
		return utils.Conflict("resident has bills on record; set the resident inactive instead")
	}
	return shared.StoreError(err, "resident")
}

// QRCode renders the resident's current gate token.
func (s *Service) QRCode(ctx context.Context, communityID string, principal types.Principal, id string) ([]byte, error) {
	resident, err := s.Get(ctx, communityID, principal, id)
	if err != nil {
		return nil, err
	}
	return shared.QRCodePNG(resident.QRToken)
}

// RotateQR invalidates the old token, e.g. after a lost card.
func (s *Service) RotateQR(ctx context.Context, communityID string, principal types.Principal, id string) ([]byte, error) {
	if err := shared.CheckResidentAccess(principal, id); err != nil {
		return nil, err
	}
	token := shared.NewGateToken(types.PersonResident)
	if err := s.store.RotateResidentToken(ctx, communityID, id, token); err != nil {
		return nil, shared.StoreError(err, "resident")
	}
	utils.Zlog.Info("Resident gate token rotated", zap.String("communityId", communityID), zap.String("residentId", id))
	return shared.QRCodePNG(token)
}
