package queries

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
)

const complaintColumns = "id, community_id, resident_id, category, title, description, priority, status, assigned_to, resolved_at, created_at, updated_at"

func (s *Store) CreateComplaint(ctx context.Context, c types.Complaint) (types.Complaint, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := s.exec(ctx, `
		INSERT INTO complaints (id, community_id, resident_id, category, title, description, priority, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.CommunityID, c.ResidentID, c.Category, c.Title, c.Description, c.Priority, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return types.Complaint{}, err
	}
	return c, nil
}

func (s *Store) GetComplaint(ctx context.Context, communityID, id string) (types.Complaint, error) {
	var c types.Complaint
	err := s.get(ctx, &c, "SELECT "+complaintColumns+" FROM complaints WHERE community_id = ? AND id = ?", communityID, id)
	return c, err
}

func (s *Store) ListComplaints(ctx context.Context, communityID string, cf types.ComplaintFilter, p types.Pagination) ([]types.Complaint, int, error) {
	f := scoped(communityID).
		eq("status", string(cf.Status)).
		eq("category", string(cf.Category)).
		eq("resident_id", cf.ResidentID)
	return page[types.Complaint](ctx, s, complaintColumns, "complaints", f, "created_at DESC", p)
}

// TransitionComplaint moves a complaint from one status to another. It
// reports ErrNotFound when the complaint is no longer in status from, so a
// concurrent change cannot be overwritten.
func (s *Store) TransitionComplaint(ctx context.Context, communityID, id string, from, to types.ComplaintStatus) error {
	set := "status = ?, updated_at = now()"
	switch to {
	case types.ComplaintResolved:
		set += ", resolved_at = now()"
	case types.ComplaintOpen:
		set += ", resolved_at = NULL"
	}
	return s.execOne(ctx, "UPDATE complaints SET "+set+" WHERE community_id = ? AND id = ? AND status = ?",
		to, communityID, id, from)
}

// AssignComplaint sets the assignee and starts work on an open complaint.
func (s *Store) AssignComplaint(ctx context.Context, communityID, id, employeeID string) error {
	return s.execOne(ctx, `
		UPDATE complaints
		SET assigned_to = ?, status = CASE WHEN status = ? THEN ? ELSE status END, updated_at = now()
		WHERE community_id = ? AND id = ? AND status IN (?, ?)
	`, employeeID, types.ComplaintOpen, types.ComplaintInProgress, communityID, id, types.ComplaintOpen, types.ComplaintInProgress)
}

func (s *Store) AddComplaintComment(ctx context.Context, c types.ComplaintComment) (types.ComplaintComment, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := s.exec(ctx, `
		INSERT INTO complaint_comments (id, complaint_id, author_id, author_role, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.ComplaintID, c.AuthorID, c.AuthorRole, c.Body, c.CreatedAt)
	if err != nil {
		return types.ComplaintComment{}, err
	}
	return c, nil
}

func (s *Store) ListComplaintComments(ctx context.Context, complaintID string) ([]types.ComplaintComment, error) {
	comments := []types.ComplaintComment{}
	err := s.selectAll(ctx, &comments, `
		SELECT id, complaint_id, author_id, author_role, body, created_at
		FROM complaint_comments
		WHERE complaint_id = ?
		ORDER BY created_at
	`, complaintID)
	return comments, err
}
