package employees

import (
	"context"
	"strings"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"go.uber.org/zap"
)

type Store interface {
	CreateEmployee(ctx context.Context, e types.Employee, account *types.User) (types.Employee, error)
	GetEmployee(ctx context.Context, communityID, id string) (types.Employee, error)
	ListEmployees(ctx context.Context, communityID string, ef types.EmployeeFilter, p types.Pagination) ([]types.Employee, int, error)
	UpdateEmployee(ctx context.Context, e types.Employee, revokeLogin bool) (types.Employee, error)
	SetEmployeeStatus(ctx context.Context, communityID, id string, status types.EmployeeStatus, account types.AccountStatus) error
	RotateEmployeeToken(ctx context.Context, communityID, id, token string) error
	DeleteEmployee(ctx context.Context, communityID, id string) error
}

const duplicateEmployee = "employee with this phone"

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func optionalEmail(email string) *string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	return &email
}

func (s *Service) Create(ctx context.Context, communityID string, req EmployeeRequest) (types.Employee, error) {
	employee := types.Employee{
		CommunityID: communityID,
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       optionalEmail(req.Email),
		Designation: req.Designation,
		Shift:       req.Shift,
		Status:      types.EmployeeActive,
		QRToken:     shared.NewGateToken(types.PersonEmployee),
		JoinedOn:    req.JoinedOn,
	}

	var account *types.User
	if req.Password != "" {
		if req.Designation != types.DesignationSecurity {
			return types.Employee{}, utils.BadRequest("only security staff can have a login")
		}
		if employee.Email == nil {
			return types.Employee{}, utils.BadRequest("email is required to create a login")
		}
		hash, err := shared.HashPassword(req.Password)
		if err != nil {
			return types.Employee{}, err
		}
		account = &types.User{
			Name:         employee.Name,
			Email:        *employee.Email,
			PasswordHash: hash,
			Role:         types.RoleSecurity,
			Status:       types.AccountActive,
		}
	}

	created, err := s.store.CreateEmployee(ctx, employee, account)
	if err != nil {
		return types.Employee{}, shared.StoreError(err, duplicateEmployee)
	}
	utils.Zlog.Info("Employee created",
		zap.String("communityId", communityID),
		zap.String("employeeId", created.ID),
		zap.String("designation", string(created.Designation)))
	return created, nil
}

func (s *Service) Get(ctx context.Context, communityID, id string) (types.Employee, error) {
	employee, err := s.store.GetEmployee(ctx, communityID, id)
	return employee, shared.StoreError(err, "employee")
}

func (s *Service) List(ctx context.Context, communityID string, filter types.EmployeeFilter, p types.Pagination) (types.ListResponse[types.Employee], error) {
	items, total, err := s.store.ListEmployees(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Employee]{}, err
	}
	return types.NewList(items, p, total), nil
}

// Update rewrites an employee. Only security staff may hold a login, so a
// move to any other designation suspends it.
func (s *Service) Update(ctx context.Context, communityID, id string, req EmployeeRequest) (types.Employee, error) {
	revokeLogin := req.Designation != types.DesignationSecurity
	employee, err := s.store.UpdateEmployee(ctx, types.Employee{
		ID:          id,
		CommunityID: communityID,
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       optionalEmail(req.Email),
		Designation: req.Designation,
		Shift:       req.Shift,
		JoinedOn:    req.JoinedOn,
	}, revokeLogin)
	if err != nil {
		return types.Employee{}, shared.StoreError(err, duplicateEmployee)
	}
	return employee, nil
}

// SetStatus deactivating an employee also suspends a linked login.
// Reactivating restores it only for security staff.
func (s *Service) SetStatus(ctx context.Context, communityID, id string, status types.EmployeeStatus) (types.Employee, error) {
	employee, err := s.Get(ctx, communityID, id)
	if err != nil {
		return types.Employee{}, err
	}
	account := types.AccountSuspended
	if status == types.EmployeeActive && employee.Designation == types.DesignationSecurity {
		account = types.AccountActive
	}
	if err := s.store.SetEmployeeStatus(ctx, communityID, id, status, account); err != nil {
		return types.Employee{}, shared.StoreError(err, "employee")
	}
	return s.Get(ctx, communityID, id)
}

func (s *Service) Delete(ctx context.Context, communityID, id string) error {
	return shared.StoreError(s.store.DeleteEmployee(ctx, communityID, id), "employee")
}

func (s *Service) QRCode(ctx context.Context, communityID, id string) ([]byte, error) {
	employee, err := s.Get(ctx, communityID, id)
	if err != nil {
		return nil, err
	}
	return shared.QRCodePNG(employee.QRToken)
}

func (s *Service) RotateQR(ctx context.Context, communityID, id string) ([]byte, error) {
	token := shared.NewGateToken(types.PersonEmployee)
	if err := s.store.RotateEmployeeToken(ctx, communityID, id, token); err != nil {
		return nil, shared.StoreError(err, "employee")
	}
	return shared.QRCodePNG(token)
}
