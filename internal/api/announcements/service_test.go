package announcements

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeStore struct {
	items  map[string]types.Announcement
	listAt time.Time
}

func (f *fakeStore) CreateAnnouncement(_ context.Context, a types.Announcement) (types.Announcement, error) {
	a.ID = "new"
	f.items[a.ID] = a
	return a, nil
}

func (f *fakeStore) GetAnnouncement(_ context.Context, communityID, id string) (types.Announcement, error) {
	a, ok := f.items[id]
	if !ok || a.CommunityID != communityID {
		return types.Announcement{}, queries.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) ListAnnouncements(_ context.Context, _ string, now time.Time, _ types.Pagination) ([]types.Announcement, int, error) {
	f.listAt = now
	return nil, 0, nil
}

func (f *fakeStore) UpdateAnnouncement(_ context.Context, a types.Announcement) (types.Announcement, error) {
	if _, ok := f.items[a.ID]; !ok {
		return types.Announcement{}, queries.ErrNotFound
	}
	f.items[a.ID] = a
	return a, nil
}

func (f *fakeStore) DeleteAnnouncement(_ context.Context, _ string, id string) error {
	if _, ok := f.items[id]; !ok {
		return queries.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func newTestService() (*Service, *fakeStore) {
	expired := testNow.Add(-time.Hour)
	store := &fakeStore{items: map[string]types.Announcement{
		"old": {ID: "old", CommunityID: "c1", Title: "Water cut", ExpiresAt: &expired},
	}}
	svc := NewService(store)
	svc.now = func() time.Time { return testNow }
	return svc, store
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

var (
	admin    = types.Principal{UserID: "u1", Role: types.RoleAdmin, CommunityID: "c1"}
	resident = types.Principal{UserID: "u2", Role: types.RoleResident, CommunityID: "c1", SubjectID: "r1"}
)

func TestCreateAnnouncement(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), "c1", admin, AnnouncementRequest{Title: " Diwali ", Body: "Party at 7", Pinned: true})
	require.NoError(t, err)
	assert.Equal(t, "Diwali", a.Title)
	assert.Equal(t, "general", a.Category)
	assert.Equal(t, "u1", a.CreatedBy)

	past := testNow.Add(-time.Minute)
	_, err = svc.Create(context.Background(), "c1", admin, AnnouncementRequest{Title: "x", Body: "y", ExpiresAt: &past})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestExpiredAnnouncementVisibility(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Get(context.Background(), "c1", resident, "old")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	a, err := svc.Get(context.Background(), "c1", admin, "old")
	require.NoError(t, err)
	assert.Equal(t, "Water cut", a.Title)

	_, err = svc.List(context.Background(), "c1", types.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, testNow, store.listAt)
}

func TestDeleteMissingAnnouncement(t *testing.T) {
	svc, _ := newTestService()

	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.Delete(context.Background(), "c1", "nope")))
	assert.NoError(t, svc.Delete(context.Background(), "c1", "old"))
}
