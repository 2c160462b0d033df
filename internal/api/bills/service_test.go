package bills

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ist = time.FixedZone("IST", 5*3600+1800)
	// 00:30 on the 11th in the community, still the 10th in UTC.
	testNow = time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
)

type fakeStore struct {
	bills    map[string]types.Bill
	filter   types.BillFilter
	tmpl     types.Bill
	summary  string
	paidWith string
}

func newFakeStore() *fakeStore {
	return &fakeStore{bills: map[string]types.Bill{
		"b1": {ID: "b1", CommunityID: "c1", ResidentID: "r1", Period: "2025-03", Amount: decimal.RequireFromString("1500"),
			DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Status: types.BillUnpaid},
		"b2": {ID: "b2", CommunityID: "c1", ResidentID: "r1", Period: "2025-02", Amount: decimal.RequireFromString("1500"),
			DueDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Status: types.BillPaid},
	}}
}

func (f *fakeStore) GetResident(_ context.Context, communityID, id string) (types.Resident, error) {
	if id != "r1" {
		return types.Resident{}, queries.ErrNotFound
	}
	return types.Resident{ID: id, CommunityID: communityID}, nil
}

func (f *fakeStore) CreateBill(_ context.Context, b types.Bill) (types.Bill, error) {
	for _, existing := range f.bills {
		if existing.ResidentID == b.ResidentID && existing.Period == b.Period {
			return types.Bill{}, queries.ErrDuplicate
		}
	}
	b.ID = "new"
	f.bills[b.ID] = b
	return b, nil
}

func (f *fakeStore) GetBill(_ context.Context, communityID, id string) (types.Bill, error) {
	b, ok := f.bills[id]
	if !ok || b.CommunityID != communityID {
		return types.Bill{}, queries.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) ListBills(_ context.Context, _ string, bf types.BillFilter, _ types.Pagination) ([]types.Bill, int, error) {
	f.filter = bf
	return []types.Bill{f.bills["b1"], f.bills["b2"]}, 2, nil
}

func (f *fakeStore) GenerateBills(_ context.Context, tmpl types.Bill) (types.GenerateResult, error) {
	f.tmpl = tmpl
	return types.GenerateResult{Period: tmpl.Period, Created: 3, Skipped: 1}, nil
}

func (f *fakeStore) PayBill(_ context.Context, _ string, id, method, _ string, at time.Time) error {
	b := f.bills[id]
	if b.Status != types.BillUnpaid {
		return queries.ErrNotFound
	}
	b.Status, b.PaidAt, b.PaymentMethod = types.BillPaid, &at, &method
	f.bills[id] = b
	f.paidWith = method
	return nil
}

func (f *fakeStore) DeleteBill(_ context.Context, _ string, id string) error {
	delete(f.bills, id)
	return nil
}

func (f *fakeStore) SummarizeBills(_ context.Context, _ string, period, residentID string, _ time.Time) (types.BillSummary, error) {
	f.summary = residentID
	return types.BillSummary{Period: period}, nil
}

var (
	admin    = types.Principal{UserID: "u1", Role: types.RoleAdmin, CommunityID: "c1"}
	resident = types.Principal{UserID: "u2", Role: types.RoleResident, CommunityID: "c1", SubjectID: "r1"}
)

func newTestService(store Store) *Service {
	svc := NewService(store, ist)
	svc.now = func() time.Time { return testNow }
	return svc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func TestGenerateBills(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	result, err := svc.Generate(context.Background(), "c1", GenerateRequest{
		Period:  "2025-04",
		Amount:  decimal.RequireFromString("2500.50"),
		DueDate: "2025-04-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "2025-04-10", store.tmpl.DueDate.Format(time.DateOnly))
	assert.Equal(t, "c1", store.tmpl.CommunityID)
}

func TestAmountValidation(t *testing.T) {
	svc := newTestService(newFakeStore())

	for _, raw := range []string{"0", "-10", "10.005"} {
		_, err := svc.Generate(context.Background(), "c1", GenerateRequest{Period: "2025-04", Amount: decimal.RequireFromString(raw), DueDate: "2025-04-10"})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err), raw)
	}
}

func TestCreateDuplicateBill(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), "c1", CreateBillRequest{ResidentID: "r1", Period: "2025-03", Amount: decimal.NewFromInt(10), DueDate: "2025-03-20"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	bill, err := svc.Create(context.Background(), "c1", CreateBillRequest{ResidentID: "r1", Period: "2025-05", Amount: decimal.NewFromInt(10), DueDate: "2025-05-20"})
	require.NoError(t, err)
	assert.Equal(t, types.BillUnpaid, bill.Status)
}

func TestListDerivesOverdueInCommunityZone(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	resp, err := svc.List(context.Background(), "c1", resident, types.BillFilter{ResidentID: "other"}, types.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, "r1", store.filter.ResidentID)
	assert.Equal(t, "2025-03-11", store.filter.Today.Format(time.DateOnly))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, types.BillOverdue, resp.Data[0].Status)
	assert.Equal(t, types.BillPaid, resp.Data[1].Status)

	_, err = svc.List(context.Background(), "c1", admin, types.BillFilter{Status: "late"}, types.Pagination{Page: 1, Limit: 20})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestPayBill(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	bill, err := svc.Pay(context.Background(), "c1", admin, "b1", PayRequest{Method: "upi", Reference: "UTR123"})
	require.NoError(t, err)
	assert.Equal(t, types.BillPaid, bill.Status)
	assert.Equal(t, "upi", store.paidWith)

	_, err = svc.Pay(context.Background(), "c1", admin, "b1", PayRequest{Method: "cash"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestDeleteBill(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	assert.Equal(t, http.StatusConflict, statusOf(t, svc.Delete(context.Background(), "c1", "b2")))
	require.NoError(t, svc.Delete(context.Background(), "c1", "b1"))
	assert.NotContains(t, store.bills, "b1")
}

func TestSummaryScopesResidents(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Summary(context.Background(), "c1", resident, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "r1", store.summary)

	_, err = svc.Summary(context.Background(), "c1", admin, "")
	require.NoError(t, err)
	assert.Empty(t, store.summary)

	_, err = svc.Summary(context.Background(), "c1", admin, "2025-3")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	assert.Equal(t, "2025-03", svc.CurrentPeriod())
}
