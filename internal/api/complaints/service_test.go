package complaints

import (
	"context"
	"net/http"
	"testing"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	complaints map[string]types.Complaint
	comments   []types.ComplaintComment
	employees  map[string]types.Employee
}

func newFakeStore(status types.ComplaintStatus) *fakeStore {
	return &fakeStore{
		complaints: map[string]types.Complaint{
			"c1": {ID: "c1", CommunityID: "k1", ResidentID: "r1", Status: status},
		},
		employees: map[string]types.Employee{
			"e1": {ID: "e1", CommunityID: "k1", Status: types.EmployeeActive},
			"e2": {ID: "e2", CommunityID: "k1", Status: types.EmployeeInactive},
		},
	}
}

func (f *fakeStore) GetEmployee(_ context.Context, communityID, id string) (types.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.CommunityID != communityID {
		return types.Employee{}, queries.ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) CreateComplaint(_ context.Context, c types.Complaint) (types.Complaint, error) {
	c.ID = "new"
	f.complaints[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetComplaint(_ context.Context, communityID, id string) (types.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok || c.CommunityID != communityID {
		return types.Complaint{}, queries.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) ListComplaints(context.Context, string, types.ComplaintFilter, types.Pagination) ([]types.Complaint, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) TransitionComplaint(_ context.Context, _ string, id string, from, to types.ComplaintStatus) error {
	c := f.complaints[id]
	if c.Status != from {
		return queries.ErrNotFound
	}
	c.Status = to
	f.complaints[id] = c
	return nil
}

func (f *fakeStore) AssignComplaint(_ context.Context, _ string, id, employeeID string) error {
	c := f.complaints[id]
	c.AssignedTo = &employeeID
	if c.Status == types.ComplaintOpen {
		c.Status = types.ComplaintInProgress
	}
	f.complaints[id] = c
	return nil
}

func (f *fakeStore) AddComplaintComment(_ context.Context, c types.ComplaintComment) (types.ComplaintComment, error) {
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeStore) ListComplaintComments(context.Context, string) ([]types.ComplaintComment, error) {
	return f.comments, nil
}

var (
	admin    = types.Principal{UserID: "u1", Role: types.RoleAdmin, CommunityID: "k1"}
	owner    = types.Principal{UserID: "u2", Role: types.RoleResident, CommunityID: "k1", SubjectID: "r1"}
	stranger = types.Principal{UserID: "u3", Role: types.RoleResident, CommunityID: "k1", SubjectID: "r2"}
	guard    = types.Principal{UserID: "u4", Role: types.RoleSecurity, CommunityID: "k1"}
)

func TestCreateComplaint(t *testing.T) {
	store := newFakeStore(types.ComplaintOpen)
	svc := NewService(store)

	complaint, err := svc.Create(context.Background(), "k1", owner, CreateComplaintRequest{
		Category:    types.CategoryPlumbing,
		Title:       " Leak ",
		Description: "Kitchen sink",
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", complaint.ResidentID)
	assert.Equal(t, "Leak", complaint.Title)
	assert.Equal(t, types.PriorityMedium, complaint.Priority)
	assert.Equal(t, types.ComplaintOpen, complaint.Status)

	_, err = svc.Create(context.Background(), "k1", admin, CreateComplaintRequest{Category: types.CategoryOther})
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestComplaintTransitions(t *testing.T) {
	cases := []struct {
		name      string
		from      types.ComplaintStatus
		to        types.ComplaintStatus
		principal types.Principal
		status    int
	}{
		{"admin starts work", types.ComplaintOpen, types.ComplaintInProgress, admin, http.StatusOK},
		{"admin rejects", types.ComplaintOpen, types.ComplaintRejected, admin, http.StatusOK},
		{"owner cannot start work", types.ComplaintOpen, types.ComplaintInProgress, owner, http.StatusForbidden},
		{"admin resolves", types.ComplaintInProgress, types.ComplaintResolved, admin, http.StatusOK},
		{"open cannot jump to resolved", types.ComplaintOpen, types.ComplaintResolved, admin, http.StatusConflict},
		{"owner closes", types.ComplaintResolved, types.ComplaintClosed, owner, http.StatusOK},
		{"admin closes", types.ComplaintResolved, types.ComplaintClosed, admin, http.StatusOK},
		{"owner reopens", types.ComplaintResolved, types.ComplaintOpen, owner, http.StatusOK},
		{"admin cannot reopen", types.ComplaintResolved, types.ComplaintOpen, admin, http.StatusForbidden},
		{"closed is final", types.ComplaintClosed, types.ComplaintOpen, owner, http.StatusConflict},
		{"rejected is final", types.ComplaintRejected, types.ComplaintInProgress, admin, http.StatusConflict},
		{"security cannot resolve", types.ComplaintInProgress, types.ComplaintResolved, guard, http.StatusForbidden},
		{"stranger cannot see it", types.ComplaintResolved, types.ComplaintClosed, stranger, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore(tc.from)
			svc := NewService(store)

			complaint, err := svc.SetStatus(context.Background(), "k1", tc.principal, "c1", StatusRequest{Status: tc.to})
			if tc.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, tc.to, complaint.Status)
				return
			}
			var apiErr *utils.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.from, store.complaints["c1"].Status)
		})
	}
}

func TestStatusNoteBecomesComment(t *testing.T) {
	store := newFakeStore(types.ComplaintInProgress)
	svc := NewService(store)

	complaint, err := svc.SetStatus(context.Background(), "k1", admin, "c1", StatusRequest{Status: types.ComplaintResolved, Note: " replaced washer "})
	require.NoError(t, err)

	require.Len(t, complaint.Comments, 1)
	assert.Equal(t, "replaced washer", complaint.Comments[0].Body)
	assert.Equal(t, types.RoleAdmin, complaint.Comments[0].AuthorRole)
}

func TestAssignComplaint(t *testing.T) {
	store := newFakeStore(types.ComplaintOpen)
	svc := NewService(store)

	complaint, err := svc.Assign(context.Background(), "k1", admin, "c1", AssignRequest{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, types.ComplaintInProgress, complaint.Status)
	require.NotNil(t, complaint.AssignedTo)
	assert.Equal(t, "e1", *complaint.AssignedTo)

	var apiErr *utils.APIError
	_, err = svc.Assign(context.Background(), "k1", admin, "c1", AssignRequest{EmployeeID: "e2"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = svc.Assign(context.Background(), "k1", admin, "c1", AssignRequest{EmployeeID: "missing"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	closed := newFakeStore(types.ComplaintClosed)
	_, err = NewService(closed).Assign(context.Background(), "k1", admin, "c1", AssignRequest{EmployeeID: "e1"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}
