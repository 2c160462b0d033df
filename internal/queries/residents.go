package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const residentColumns = "id, community_id, name, email, phone, block, flat_number, ownership, status, qr_token, move_in_date, created_at, updated_at"

// CreateResident inserts the resident and, when account is not nil, its
// login in the same transaction.
func (s *Store) CreateResident(ctx context.Context, r types.Resident, account *types.User) (types.Resident, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now

	err := s.inTx(ctx, func(tx *Store) error {
		_, err := tx.exec(ctx, `
			INSERT INTO residents (id, community_id, name, email, phone, block, flat_number, ownership, status, qr_token, move_in_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.ID, r.CommunityID, r.Name, r.Email, r.Phone, r.Block, r.FlatNumber, r.Ownership, r.Status, r.QRToken, r.MoveInDate, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return err
		}
		if account == nil {
			return nil
		}
		account.CommunityID = &r.CommunityID
		account.SubjectID = &r.ID
		_, err = tx.CreateUser(ctx, *account)
		return err
	})
	if err != nil {
		return types.Resident{}, err
	}
	return r, nil
}

func (s *Store) GetResident(ctx context.Context, communityID, id string) (types.Resident, error) {
	var r types.Resident
	err := s.get(ctx, &r, "SELECT "+residentColumns+" FROM residents WHERE community_id = ? AND id = ?", communityID, id)
	return r, err
}

func (s *Store) GetResidentByToken(ctx context.Context, communityID, token string) (types.Resident, error) {
	var r types.Resident
	err := s.get(ctx, &r, "SELECT "+residentColumns+" FROM residents WHERE community_id = ? AND qr_token = ?", communityID, token)
	return r, err
}

func (s *Store) ListResidents(ctx context.Context, communityID string, rf types.ResidentFilter, p types.Pagination) ([]types.Resident, int, error) {
	f := scoped(communityID).eq("status", string(rf.Status)).eq("block", rf.Block)
	if rf.Search != "" {
		pattern := likePattern(rf.Search)
		f.add("(name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR flat_number ILIKE ?)", pattern, pattern, pattern, pattern)
	}
	return page[types.Resident](ctx, s, residentColumns, "residents", f, "block, flat_number, name", p)
}

// ListActiveResidentIDs returns every billable resident of the community.
func (s *Store) ListActiveResidentIDs(ctx context.Context, communityID string) ([]string, error) {
	var ids []string
	err := s.selectAll(ctx, &ids, "SELECT id FROM residents WHERE community_id = ? AND status = ? ORDER BY id",
		communityID, types.ResidentActive)
	return ids, err
}

func (s *Store) UpdateResident(ctx context.Context, r types.Resident) (types.Resident, error) {
	r.UpdatedAt = time.Now().UTC()
	err := s.execOne(ctx, `
		UPDATE residents
		SET name = ?, email = ?, phone = ?, block = ?, flat_number = ?, ownership = ?, move_in_date = ?, updated_at = ?
		WHERE community_id = ? AND id = ?
	`, r.Name, r.Email, r.Phone, r.Block, r.FlatNumber, r.Ownership, r.MoveInDate, r.UpdatedAt, r.CommunityID, r.ID)
	if err != nil {
		return types.Resident{}, err
	}
	return s.GetResident(ctx, r.CommunityID, r.ID)
}

// SetResidentStatus updates the resident and its login account together.
func (s *Store) SetResidentStatus(ctx context.Context, communityID, id string, status types.ResidentStatus, account types.AccountStatus) error {
	return s.inTx(ctx, func(tx *Store) error {
		if err := tx.setStatus(ctx, "residents", communityID, id, string(status)); err != nil {
			return err
		}
		return tx.setSubjectAccountStatus(ctx, communityID, id, account)
	})
}

func (s *Store) RotateResidentToken(ctx context.Context, communityID, id, token string) error {
	return s.rotateToken(ctx, "residents", communityID, id, token)
}

func (s *Store) DeleteResident(ctx context.Context, communityID, id string) error {
	return s.inTx(ctx, func(tx *Store) error {
		if err := tx.deleteSubjectAccount(ctx, communityID, id); err != nil {
			return err
		}
		return tx.deleteScoped(ctx, "residents", communityID, id)
	})
}
