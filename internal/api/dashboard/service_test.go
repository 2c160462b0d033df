package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	dayStart, dayEnd time.Time
	period           string
	summaryResident  string
}

func (f *fakeStore) CountResidentsByStatus(context.Context, string) ([]types.StatusCount, error) {
	return []types.StatusCount{{Status: "active", Count: 40}, {Status: "pending", Count: 3}}, nil
}

func (f *fakeStore) CountComplaintsByStatus(context.Context, string) ([]types.StatusCount, error) {
	return []types.StatusCount{{Status: "open", Count: 2}}, nil
}

func (f *fakeStore) CommunityCounters(_ context.Context, _ string, dayStart, dayEnd time.Time) (types.CommunityCounters, error) {
	f.dayStart, f.dayEnd = dayStart, dayEnd
	return types.CommunityCounters{ActiveEmployees: 5, InsideNow: 12, PendingDeliveries: 4}, nil
}

func (f *fakeStore) ResidentCounters(context.Context, string, string) (types.ResidentCounters, error) {
	return types.ResidentCounters{OpenComplaints: 1, PendingDeliveries: 2}, nil
}

func (f *fakeStore) ListUpcomingGuests(context.Context, string, string, time.Time, int) ([]types.Guest, error) {
	return nil, nil
}

func (f *fakeStore) ListAnnouncements(context.Context, string, time.Time, types.Pagination) ([]types.Announcement, int, error) {
	return []types.Announcement{{ID: "a1"}}, 1, nil
}

func (f *fakeStore) SummarizeBills(_ context.Context, _ string, period, residentID string, _ time.Time) (types.BillSummary, error) {
	f.period, f.summaryResident = period, residentID
	return types.BillSummary{Period: period, Count: 3, PaidCount: 1, Outstanding: decimal.RequireFromString("3000")}, nil
}

func newTestService(store Store) *Service {
	loc := time.FixedZone("IST", 5*3600+1800)
	svc := NewService(store, loc)
	// 2025-04-01 02:00 in the community, still March in UTC.
	svc.now = func() time.Time { return time.Date(2025, 3, 31, 20, 30, 0, 0, time.UTC) }
	return svc
}

func TestAdminDashboard(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	dash, err := svc.Admin(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, map[types.ResidentStatus]int{"pending": 3, "active": 40, "rejected": 0, "inactive": 0}, dash.Residents)
	assert.Equal(t, 2, dash.Complaints[types.ComplaintOpen])
	assert.Equal(t, 0, dash.Complaints[types.ComplaintClosed])
	assert.Len(t, dash.Complaints, 5)
	assert.Equal(t, 12, dash.InsideNow)
	assert.Equal(t, "2025-04", store.period)
	assert.Equal(t, "2025-04", dash.Bills.Period)
	assert.Equal(t, 24*time.Hour, store.dayEnd.Sub(store.dayStart))
	assert.Equal(t, "2025-04-01T00:00:00+05:30", store.dayStart.Format(time.RFC3339))
}

func TestResidentDashboard(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	dash, err := svc.Resident(context.Background(), "c1", types.Principal{Role: types.RoleResident, SubjectID: "r1"})
	require.NoError(t, err)

	assert.Equal(t, "r1", store.summaryResident)
	assert.Empty(t, store.period)
	assert.True(t, decimal.RequireFromString("3000").Equal(dash.UnpaidTotal))
	assert.Equal(t, 2, dash.UnpaidBills)
	assert.Equal(t, 1, dash.OpenComplaints)
	assert.NotNil(t, dash.UpcomingGuests)
	assert.Len(t, dash.Announcements, 1)

	_, err = svc.Resident(context.Background(), "c1", types.Principal{Role: types.RoleAdmin})
	assert.Error(t, err)
}
