package guests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	residents map[string]types.Resident
	guests    map[string]types.Guest
	entries   []types.GateEntry
	filter    types.GuestFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		residents: map[string]types.Resident{
			"r1": {ID: "r1", CommunityID: "c1", Name: "Asha", Block: "A", FlatNumber: "101", Status: types.ResidentActive},
			"r2": {ID: "r2", CommunityID: "c1", Name: "Ravi", Status: types.ResidentInactive},
		},
		guests: map[string]types.Guest{
			"g1": {ID: "g1", CommunityID: "c1", ResidentID: "r1", Status: types.GuestExpected, QRToken: "gst_g1"},
			"g2": {ID: "g2", CommunityID: "c1", ResidentID: "r1", Status: types.GuestCheckedIn, QRToken: "gst_g2"},
		},
	}
}

func (f *fakeStore) GetResident(_ context.Context, communityID, id string) (types.Resident, error) {
	r, ok := f.residents[id]
	if !ok || r.CommunityID != communityID {
		return types.Resident{}, queries.ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) CreateGuest(_ context.Context, g types.Guest) (types.Guest, error) {
	g.ID = "new"
	f.guests[g.ID] = g
	return g, nil
}

func (f *fakeStore) GetGuest(_ context.Context, communityID, id string) (types.Guest, error) {
	g, ok := f.guests[id]
	if !ok || g.CommunityID != communityID {
		return types.Guest{}, queries.ErrNotFound
	}
	return g, nil
}

func (f *fakeStore) ListGuests(_ context.Context, _ string, gf types.GuestFilter, _ types.Pagination) ([]types.Guest, int, error) {
	f.filter = gf
	return nil, 0, nil
}

func (f *fakeStore) CancelGuest(_ context.Context, _ string, id string) error {
	g := f.guests[id]
	g.Status = types.GuestCancelled
	f.guests[id] = g
	return nil
}

func (f *fakeStore) WithPersonLock(_ context.Context, _ string, _ types.PersonType, _ string, fn func(queries.GateWriter) error) error {
	return fn(f)
}

func (f *fakeStore) LastGateEntry(context.Context, string, types.PersonType, string) (*types.GateEntry, error) {
	return nil, nil
}

func (f *fakeStore) CreateGateEntry(_ context.Context, e types.GateEntry) (types.GateEntry, error) {
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeStore) MarkGuestCheckedIn(_ context.Context, _ string, id string, at time.Time) error {
	g := f.guests[id]
	g.Status = types.GuestCheckedIn
	g.CheckedInAt = &at
	f.guests[id] = g
	return nil
}

func (f *fakeStore) MarkGuestCheckedOut(context.Context, string, string, time.Time) error {
	return nil
}

var (
	resident = types.Principal{UserID: "u1", Role: types.RoleResident, CommunityID: "c1", SubjectID: "r1"}
	guard    = types.Principal{UserID: "u2", Role: types.RoleSecurity, CommunityID: "c1"}
	admin    = types.Principal{UserID: "u3", Role: types.RoleAdmin, CommunityID: "c1"}
)

func newTestService(store Store) *Service {
	svc := NewService(store, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func TestCreateGuestForcesOwnResident(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	expected := time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC)

	guest, err := svc.Create(context.Background(), "c1", resident, CreateGuestRequest{
		ResidentID: "r2",
		Name:       " Meera ",
		Phone:      "+919876543210",
		ExpectedAt: expected,
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", guest.ResidentID)
	assert.Equal(t, "Meera", guest.Name)
	assert.Equal(t, types.GuestExpected, guest.Status)
	assert.Equal(t, expected.Add(24*time.Hour), guest.ValidUntil)
	pt, ok := shared.ParseGateToken(guest.QRToken)
	require.True(t, ok)
	assert.Equal(t, types.PersonGuest, pt)
}

func TestCreateGuestRejections(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), "c1", admin, CreateGuestRequest{Name: "X", ExpectedAt: time.Now()})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Create(context.Background(), "c1", admin, CreateGuestRequest{ResidentID: "r2", Name: "X", ExpectedAt: time.Now()})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = svc.Create(context.Background(), "c1", resident, CreateGuestRequest{
		Name:       "X",
		ExpectedAt: time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestWalkInChecksGuestIn(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	result, err := svc.WalkIn(context.Background(), "c1", guard, WalkInRequest{
		ResidentID: "r1",
		Name:       "Plumber",
		Phone:      "+919876543210",
		Gate:       "main",
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	assert.Equal(t, types.DirectionEntry, result.Entry.Direction)
	assert.Equal(t, types.EntryMethodWalkIn, result.Entry.Method)
	assert.Equal(t, "guest of Asha", result.Person.Detail)
	assert.Equal(t, types.GuestCheckedIn, store.guests[result.Person.ID].Status)
}

func TestListGuestsByDay(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	day := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), "c1", resident, types.GuestFilter{ResidentID: "r9"}, &day, types.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, "r1", store.filter.ResidentID)
	require.NotNil(t, store.filter.From)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), *store.filter.From)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), *store.filter.To)
}

func TestCancelGuest(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Cancel(context.Background(), "c1", guard, "g1")
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	guest, err := svc.Cancel(context.Background(), "c1", resident, "g1")
	require.NoError(t, err)
	assert.Equal(t, types.GuestCancelled, guest.Status)

	_, err = svc.Cancel(context.Background(), "c1", resident, "g2")
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = svc.Get(context.Background(), "c1", types.Principal{Role: types.RoleResident, SubjectID: "r2"}, "g1")
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}
