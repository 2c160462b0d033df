package dashboard

import (
	"context"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/samber/lo"
)

const (
	upcomingGuests      = 5
	latestAnnouncements = 5
)

var (
	residentStatuses  = []types.ResidentStatus{types.ResidentPending, types.ResidentActive, types.ResidentRejected, types.ResidentInactive}
	complaintStatuses = []types.ComplaintStatus{types.ComplaintOpen, types.ComplaintInProgress, types.ComplaintResolved, types.ComplaintClosed, types.ComplaintRejected}
)

type Store interface {
	CountResidentsByStatus(ctx context.Context, communityID string) ([]types.StatusCount, error)
	CountComplaintsByStatus(ctx context.Context, communityID string) ([]types.StatusCount, error)
	CommunityCounters(ctx context.Context, communityID string, dayStart, dayEnd time.Time) (types.CommunityCounters, error)
	ResidentCounters(ctx context.Context, communityID, residentID string) (types.ResidentCounters, error)
	ListUpcomingGuests(ctx context.Context, communityID, residentID string, now time.Time, limit int) ([]types.Guest, error)
	ListAnnouncements(ctx context.Context, communityID string, now time.Time, p types.Pagination) ([]types.Announcement, int, error)
	SummarizeBills(ctx context.Context, communityID, period, residentID string, today time.Time) (types.BillSummary, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store, loc *time.Location) *Service {
	return &Service{store: store, loc: loc, now: time.Now}
}

// byStatus turns GROUP BY rows into a map that lists every known status,
// zero when absent.
func byStatus[S ~string](known []S, rows []types.StatusCount) map[S]int {
	counts := lo.SliceToMap(known, func(s S) (S, int) { return s, 0 })
	return lo.Assign(counts, lo.SliceToMap(rows, func(r types.StatusCount) (S, int) {
		return S(r.Status), r.Count
	}))
}

func (s *Service) Admin(ctx context.Context, communityID string) (types.AdminDashboard, error) {
	now := s.now().In(s.loc)
	dayStart := types.DateOnly(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	residents, err := s.store.CountResidentsByStatus(ctx, communityID)
	if err != nil {
		return types.AdminDashboard{}, err
	}
	complaints, err := s.store.CountComplaintsByStatus(ctx, communityID)
	if err != nil {
		return types.AdminDashboard{}, err
	}
	counters, err := s.store.CommunityCounters(ctx, communityID, dayStart, dayEnd)
	if err != nil {
		return types.AdminDashboard{}, err
	}
	bills, err := s.store.SummarizeBills(ctx, communityID, now.Format("2006-01"), "", now)
	if err != nil {
		return types.AdminDashboard{}, err
	}

	return types.AdminDashboard{
		Residents:         byStatus(residentStatuses, residents),
		ActiveEmployees:   counters.ActiveEmployees,
		ActiveProviders:   counters.ActiveProviders,
		Vehicles:          counters.Vehicles,
		GuestsExpected:    counters.GuestsExpected,
		InsideNow:         counters.InsideNow,
		EntriesToday:      counters.EntriesToday,
		Complaints:        byStatus(complaintStatuses, complaints),
		PendingBookings:   counters.PendingBookings,
		PendingDeliveries: counters.PendingDeliveries,
		Bills:             bills,
	}, nil
}

func (s *Service) Resident(ctx context.Context, communityID string, principal types.Principal) (types.ResidentDashboard, error) {
	if principal.Role != types.RoleResident || principal.SubjectID == "" {
		return types.ResidentDashboard{}, utils.Forbidden("only residents have a personal dashboard")
	}
	residentID := principal.SubjectID
	now := s.now()

	bills, err := s.store.SummarizeBills(ctx, communityID, "", residentID, now.In(s.loc))
	if err != nil {
		return types.ResidentDashboard{}, err
	}
	counters, err := s.store.ResidentCounters(ctx, communityID, residentID)
	if err != nil {
		return types.ResidentDashboard{}, err
	}
	guests, err := s.store.ListUpcomingGuests(ctx, communityID, residentID, now.UTC(), upcomingGuests)
	if err != nil {
		return types.ResidentDashboard{}, err
	}
	announcements, _, err := s.store.ListAnnouncements(ctx, communityID, now.UTC(), types.Pagination{Page: 1, Limit: latestAnnouncements})
	if err != nil {
		return types.ResidentDashboard{}, err
	}

	return types.ResidentDashboard{
		UnpaidTotal:       bills.Outstanding,
		UnpaidBills:       bills.Count - bills.PaidCount,
		OpenComplaints:    counters.OpenComplaints,
		PendingDeliveries: counters.PendingDeliveries,
		UpcomingGuests:    lo.Ternary(guests == nil, []types.Guest{}, guests),
		Announcements:     lo.Ternary(announcements == nil, []types.Announcement{}, announcements),
	}, nil
}
