package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

// UsersEmailKey is the unique index on login emails.
const UsersEmailKey = "users_email_key"

const userColumns = "id, community_id, name, email, password_hash, role, status, subject_id, last_login_at, created_at, updated_at"

func (s *Store) CreateUser(ctx context.Context, u types.User) (types.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO users (id, community_id, name, email, password_hash, role, status, subject_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.CommunityID, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.SubjectID, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return types.User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (types.User, error) {
	var u types.User
	err := s.get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return u, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (types.User, error) {
	var u types.User
	err := s.get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower(?)", email)
	return u, err
}

// GetAccount loads what the auth middleware checks on every request.
func (s *Store) GetAccount(ctx context.Context, id string) (types.Account, error) {
	var a types.Account
	err := s.get(ctx, &a, `
		SELECT u.id, u.email, u.role, u.status, u.community_id, u.subject_id, c.status AS community_status
		FROM users u
		LEFT JOIN communities c ON c.id = u.community_id
		WHERE u.id = ?
	`, id)
	return a, err
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.execOne(ctx, "UPDATE users SET password_hash = ?, updated_at = now() WHERE id = ?", hash, id)
}

func (s *Store) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return s.execOne(ctx, "UPDATE users SET last_login_at = ? WHERE id = ?", at, id)
}

// setSubjectAccountStatus keeps a registry record's login in step with it.
// Records without an account are not an error.
func (s *Store) setSubjectAccountStatus(ctx context.Context, communityID, subjectID string, status types.AccountStatus) error {
	_, err := s.exec(ctx, `
		UPDATE users SET status = ?, updated_at = now()
		WHERE community_id = ? AND subject_id = ?
	`, status, communityID, subjectID)
	return err
}

func (s *Store) deleteSubjectAccount(ctx context.Context, communityID, subjectID string) error {
	_, err := s.exec(ctx, "DELETE FROM users WHERE community_id = ? AND subject_id = ?", communityID, subjectID)
	return err
}
