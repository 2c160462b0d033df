package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const employeeColumns = "id, community_id, name, phone, email, designation, shift, status, qr_token, joined_on, created_at, updated_at"

func (s *Store) CreateEmployee(ctx context.Context, e types.Employee, account *types.User) (types.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	err := s.inTx(ctx, func(tx *Store) error {
		_, err := tx.exec(ctx, `
			INSERT INTO employees (id, community_id, name, phone, email, designation, shift, status, qr_token, joined_on, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.CommunityID, e.Name, e.Phone, e.Email, e.Designation, e.Shift, e.Status, e.QRToken, e.JoinedOn, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return err
		}
		if account == nil {
			return nil
		}
		account.CommunityID = &e.CommunityID
		account.SubjectID = &e.ID
		_, err = tx.CreateUser(ctx, *account)
		return err
	})
	if err != nil {
		return types.Employee{}, err
	}
	return e, nil
}

func (s *Store) GetEmployee(ctx context.Context, communityID, id string) (types.Employee, error) {
	var e types.Employee
	err := s.get(ctx, &e, "SELECT "+employeeColumns+" FROM employees WHERE community_id = ? AND id = ?", communityID, id)
	return e, err
}

func (s *Store) GetEmployeeByToken(ctx context.Context, communityID, token string) (types.Employee, error) {
	var e types.Employee
	err := s.get(ctx, &e, "SELECT "+employeeColumns+" FROM employees WHERE community_id = ? AND qr_token = ?", communityID, token)
	return e, err
}

func (s *Store) ListEmployees(ctx context.Context, communityID string, ef types.EmployeeFilter, p types.Pagination) ([]types.Employee, int, error) {
	f := scoped(communityID).eq("status", string(ef.Status)).eq("designation", string(ef.Designation))
	if ef.Search != "" {
		pattern := likePattern(ef.Search)
		f.add("(name ILIKE ? OR phone ILIKE ?)", pattern, pattern)
	}
	return page[types.Employee](ctx, s, employeeColumns, "employees", f, "name", p)
}

// UpdateEmployee rewrites the record. revokeLogin suspends a linked login in
// the same transaction, for staff moved off security duty.
func (s *Store) UpdateEmployee(ctx context.Context, e types.Employee, revokeLogin bool) (types.Employee, error) {
	e.UpdatedAt = time.Now().UTC()
	err := s.inTx(ctx, func(tx *Store) error {
		err := tx.execOne(ctx, `
			UPDATE employees
			SET name = ?, phone = ?, email = ?, designation = ?, shift = ?, joined_on = ?, updated_at = ?
			WHERE community_id = ? AND id = ?
		`, e.Name, e.Phone, e.Email, e.Designation, e.Shift, e.JoinedOn, e.UpdatedAt, e.CommunityID, e.ID)
		if err != nil || !revokeLogin {
			return err
		}
		return tx.setSubjectAccountStatus(ctx, e.CommunityID, e.ID, types.AccountSuspended)
	})
	if err != nil {
		return types.Employee{}, err
	}
	return s.GetEmployee(ctx, e.CommunityID, e.ID)
}

func (s *Store) SetEmployeeStatus(ctx context.Context, communityID, id string, status types.EmployeeStatus, account types.AccountStatus) error {
	return s.inTx(ctx, func(tx *Store) error {
		if err := tx.setStatus(ctx, "employees", communityID, id, string(status)); err != nil {
			return err
		}
		return tx.setSubjectAccountStatus(ctx, communityID, id, account)
	})
}

func (s *Store) RotateEmployeeToken(ctx context.Context, communityID, id, token string) error {
	return s.rotateToken(ctx, "employees", communityID, id, token)
}

func (s *Store) DeleteEmployee(ctx context.Context, communityID, id string) error {
	return s.inTx(ctx, func(tx *Store) error {
		if err := tx.deleteSubjectAccount(ctx, communityID, id); err != nil {
			return err
		}
		return tx.deleteScoped(ctx, "employees", communityID, id)
	})
}
