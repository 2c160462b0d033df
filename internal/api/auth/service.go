package auth

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

const invalidCredentials = "invalid email or password"

type Store interface {
	GetCommunityByCode(ctx context.Context, code string) (types.Community, error)
	CreateResident(ctx context.Context, r types.Resident, account *types.User) (types.Resident, error)
	GetUser(ctx context.Context, id string) (types.User, error)
	GetUserByEmail(ctx context.Context, email string) (types.User, error)
	GetAccount(ctx context.Context, id string) (types.Account, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

type Service struct {
	store  Store
	tokens *shared.TokenManager
	now    func() time.Time
}

func NewService(store Store, tokens *shared.TokenManager) *Service {
	return &Service{store: store, tokens: tokens, now: time.Now}
}

// Register creates a pending resident and its pending login. An admin has
// to approve the resident before the account can sign in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (types.Resident, error) {
	community, err := s.store.GetCommunityByCode(ctx, strings.ToLower(strings.TrimSpace(req.CommunityCode)))
	if err != nil {
		return types.Resident{}, shared.StoreError(err, "community")
	}
	if community.Status != types.CommunityActive {
		return types.Resident{}, utils.NotFound("community")
	}

	hash, err := shared.HashPassword(req.Password)
	if err != nil {
		return types.Resident{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	resident := types.Resident{
		CommunityID: community.ID,
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Phone:       req.Phone,
		Block:       strings.TrimSpace(req.Block),
		FlatNumber:  strings.TrimSpace(req.FlatNumber),
		Ownership:   req.Ownership,
		Status:      types.ResidentPending,
		QRToken:     shared.NewGateToken(types.PersonResident),
	}
	account := &types.User{
		Name:         resident.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         types.RoleResident,
		Status:       types.AccountPending,
	}

	created, err := s.store.CreateResident(ctx, resident, account)
	if err != nil {
		return types.Resident{}, shared.StoreError(err, "resident with this email or phone")
	}
	utils.Zlog.Info("Resident registered",
		zap.String("communityId", community.ID),
		zap.String("residentId", created.ID))
	return created, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, queries.ErrNotFound) {
		return LoginResponse{}, utils.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return LoginResponse{}, err
	}
	if !shared.CheckPassword(user.PasswordHash, req.Password) {
		return LoginResponse{}, utils.Unauthorized(invalidCredentials)
	}

	if _, err := s.checkAccount(ctx, user.ID); err != nil {
		return LoginResponse{}, err
	}

	pair, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return LoginResponse{}, err
	}

	now := s.now().UTC()
	if err := s.store.TouchLogin(ctx, user.ID, now); err != nil {
		utils.Zlog.Warn("Failed to record login time", zap.String("userId", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}
	return LoginResponse{TokenPair: pair, User: user}, nil
}

// Refresh trades a refresh token for a new pair. The account is re-checked
// so suspended users cannot keep refreshing.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (shared.TokenPair, error) {
	claims, err := s.tokens.Parse(req.RefreshToken, shared.TokenRefresh)
	if err != nil {
		return shared.TokenPair{}, utils.Unauthorized("invalid or expired refresh token")
	}
	account, err := s.checkAccount(ctx, claims.Subject)
	if err != nil {
		return shared.TokenPair{}, err
	}
	return s.tokens.Issue(account.ID, account.Role)
}

// checkAccount applies the same status rules as the auth middleware.
func (s *Service) checkAccount(ctx context.Context, userID string) (types.Account, error) {
	account, err := s.store.GetAccount(ctx, userID)
	if errors.Is(err, queries.ErrNotFound) {
		return types.Account{}, utils.Unauthorized("account no longer exists")
	}
	if err != nil {
		return types.Account{}, err
	}
	switch account.Status {
	case types.AccountActive:
	case types.AccountPending:
		return types.Account{}, utils.Forbidden("account pending approval")
	default:
		return types.Account{}, utils.Forbidden("account suspended")
	}
	if account.Role != types.RoleSuperAdmin &&
		(account.CommunityStatus == nil || *account.CommunityStatus != types.CommunityActive) {
		return types.Account{}, utils.Forbidden("community is inactive")
	}
	return account, nil
}

func (s *Service) Me(ctx context.Context, principal types.Principal) (MeResponse, error) {
	user, err := s.store.GetUser(ctx, principal.UserID)
	if err != nil {
		return MeResponse{}, shared.StoreError(err, "user")
	}
	resp := MeResponse{User: user}
	switch user.Role {
	case types.RoleResident:
		resp.ResidentID = principal.SubjectID
	case types.RoleSecurity:
		resp.EmployeeID = principal.SubjectID
	}
	return resp, nil
}

func (s *Service) ChangePassword(ctx context.Context, principal types.Principal, req ChangePasswordRequest) error {
	user, err := s.store.GetUser(ctx, principal.UserID)
	if err != nil {
		return shared.StoreError(err, "user")
	}
	if !shared.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return utils.Unauthorized("current password is incorrect")
	}
	if req.NewPassword == req.CurrentPassword {
		return utils.BadRequest("new password must differ from the current one")
	}
	hash, err := shared.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return shared.StoreError(s.store.UpdatePassword(ctx, user.ID, hash), "user")
}
