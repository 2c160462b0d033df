package complaints

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

// actor says who may make a transition.
type actor struct {
	admin bool
	owner bool
}

var transitions = map[types.ComplaintStatus]map[types.ComplaintStatus]actor{
	types.ComplaintOpen: {
		types.ComplaintInProgress: {admin: true},
		types.ComplaintRejected:   {admin: true},
	},
	types.ComplaintInProgress: {
		types.ComplaintResolved: {admin: true},
	},
	types.ComplaintResolved: {
		types.ComplaintClosed: {admin: true, owner: true},
		types.ComplaintOpen:   {owner: true},
	},
}

type Store interface {
	GetEmployee(ctx context.Context, communityID, id string) (types.Employee, error)
	CreateComplaint(ctx context.Context, c types.Complaint) (types.Complaint, error)
	GetComplaint(ctx context.Context, communityID, id string) (types.Complaint, error)
	ListComplaints(ctx context.Context, communityID string, cf types.ComplaintFilter, p types.Pagination) ([]types.Complaint, int, error)
	TransitionComplaint(ctx context.Context, communityID, id string, from, to types.ComplaintStatus) error
	AssignComplaint(ctx context.Context, communityID, id, employeeID string) error
	AddComplaintComment(ctx context.Context, c types.ComplaintComment) (types.ComplaintComment, error)
	ListComplaintComments(ctx context.Context, complaintID string) ([]types.ComplaintComment, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, communityID string, principal types.Principal, req CreateComplaintRequest) (types.Complaint, error) {
	if principal.Role != types.RoleResident || principal.SubjectID == "" {
		return types.Complaint{}, utils.Forbidden("only residents can file complaints")
	}
	priority := req.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}

	complaint, err := s.store.CreateComplaint(ctx, types.Complaint{
		CommunityID: communityID,
		ResidentID:  principal.SubjectID,
		Category:    req.Category,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      types.ComplaintOpen,
	})
	if err != nil {
		return types.Complaint{}, shared.StoreError(err, "complaint")
	}
	return complaint, nil
}

func (s *Service) load(ctx context.Context, communityID string, principal types.Principal, id string) (types.Complaint, error) {
	complaint, err := s.store.GetComplaint(ctx, communityID, id)
	if err != nil {
		return types.Complaint{}, shared.StoreError(err, "complaint")
	}
	if err := shared.CheckResidentAccess(principal, complaint.ResidentID); err != nil {
		return types.Complaint{}, err
	}
	return complaint, nil
}

// Get returns the complaint with its comment thread.
func (s *Service) Get(ctx context.Context, communityID string, principal types.Principal, id string) (types.Complaint, error) {
	complaint, err := s.load(ctx, communityID, principal, id)
	if err != nil {
		return types.Complaint{}, err
	}
	complaint.Comments, err = s.store.ListComplaintComments(ctx, complaint.ID)
	if err != nil {
		return types.Complaint{}, err
	}
	return complaint, nil
}

func (s *Service) List(ctx context.Context, communityID string, principal types.Principal, filter types.ComplaintFilter, p types.Pagination) (types.ListResponse[types.Complaint], error) {
	filter.ResidentID = shared.ResidentFilter(principal, filter.ResidentID)
	items, total, err := s.store.ListComplaints(ctx, communityID, filter, p)
	if err != nil {
		return types.ListResponse[types.Complaint]{}, err
	}
	return types.NewList(items, p, total), nil
}

// SetStatus applies one step of the complaint workflow. A note is kept as a
// comment from the caller.
func (s *Service) SetStatus(ctx context.Context, communityID string, principal types.Principal, id string, req StatusRequest) (types.Complaint, error) {
	complaint, err := s.load(ctx, communityID, principal, id)
	if err != nil {
		return types.Complaint{}, err
	}

	allowed, ok := transitions[complaint.Status][req.Status]
	if !ok {
		return types.Complaint{}, utils.Conflict("cannot move complaint from %s to %s", complaint.Status, req.Status)
	}
	isOwner := principal.OwnsResident(complaint.ResidentID)
	if !(allowed.admin && principal.IsAdmin()) && !(allowed.owner && isOwner) {
		return types.Complaint{}, utils.Forbidden("you cannot move this complaint to " + string(req.Status))
	}

	if err := s.store.TransitionComplaint(ctx, communityID, id, complaint.Status, req.Status); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Complaint{}, utils.Conflict("complaint was changed by someone else, reload and retry")
		}
		return types.Complaint{}, err
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		if _, err := s.addComment(ctx, principal, complaint.ID, note); err != nil {
			return types.Complaint{}, err
		}
	}
	utils.Zlog.Info("Complaint status changed",
		zap.String("communityId", communityID),
		zap.String("complaintId", id),
		zap.String("from", string(complaint.Status)),
		zap.String("to", string(req.Status)))

	return s.Get(ctx, communityID, principal, id)
}

// Assign hands the complaint to an employee, starting work if it was open.
func (s *Service) Assign(ctx context.Context, communityID string, principal types.Principal, id string, req AssignRequest) (types.Complaint, error) {
	complaint, err := s.load(ctx, communityID, principal, id)
	if err != nil {
		return types.Complaint{}, err
	}
	employee, err := s.store.GetEmployee(ctx, communityID, req.EmployeeID)
	if err != nil {
		return types.Complaint{}, shared.StoreError(err, "employee")
	}
	if employee.Status != types.EmployeeActive {
		return types.Complaint{}, utils.BadRequest("employee is not active")
	}
	if complaint.Status != types.ComplaintOpen && complaint.Status != types.ComplaintInProgress {
		return types.Complaint{}, utils.Conflict("complaint is %s and can no longer be assigned", complaint.Status)
	}

	if err := s.store.AssignComplaint(ctx, communityID, id, employee.ID); err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			return types.Complaint{}, utils.Conflict("complaint can no longer be assigned")
		}
		return types.Complaint{}, err
	}
	return s.Get(ctx, communityID, principal, id)
}

func (s *Service) Comment(ctx context.Context, communityID string, principal types.Principal, id string, req CommentRequest) (types.ComplaintComment, error) {
	complaint, err := s.load(ctx, communityID, principal, id)
	if err != nil {
		return types.ComplaintComment{}, err
	}
	return s.addComment(ctx, principal, complaint.ID, strings.TrimSpace(req.Body))
}

func (s *Service) addComment(ctx context.Context, principal types.Principal, complaintID, body string) (types.ComplaintComment, error) {
	comment, err := s.store.AddComplaintComment(ctx, types.ComplaintComment{
		ComplaintID: complaintID,
		AuthorID:    principal.UserID,
		AuthorRole:  principal.Role,
		Body:        body,
	})
	if err != nil {
		return types.ComplaintComment{}, shared.StoreError(err, "comment")
	}
	return comment, nil
}
