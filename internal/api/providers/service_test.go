package providers

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
	providers map[string]types.ServiceProvider
}

func newFakeStore() *fakeStore {
	expired := testNow.Add(-48 * time.Hour)
	return &fakeStore{providers: map[string]types.ServiceProvider{
		"p1": {ID: "p1", CommunityID: "c1", Name: "Sunil", Phone: "+919800000100", ServiceType: types.ServicePlumber,
			Status: types.ProviderActive, QRToken: "svc_p1", ValidUntil: &expired},
	}}
}

func (f *fakeStore) CreateProvider(_ context.Context, p types.ServiceProvider) (types.ServiceProvider, error) {
	for _, existing := range f.providers {
		if existing.CommunityID == p.CommunityID && existing.Phone == p.Phone {
			return types.ServiceProvider{}, queries.ErrDuplicate
		}
	}
	p.ID = "new"
	f.providers[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetProvider(_ context.Context, communityID, id string) (types.ServiceProvider, error) {
	p, ok := f.providers[id]
	if !ok || p.CommunityID != communityID {
		return types.ServiceProvider{}, queries.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) ListProviders(context.Context, string, types.ProviderFilter, types.Pagination) ([]types.ServiceProvider, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) UpdateProvider(_ context.Context, p types.ServiceProvider) (types.ServiceProvider, error) {
	existing, ok := f.providers[p.ID]
	if !ok {
		return types.ServiceProvider{}, queries.ErrNotFound
	}
	p.Status, p.QRToken = existing.Status, existing.QRToken
	f.providers[p.ID] = p
	return p, nil
}

func (f *fakeStore) SetProviderStatus(_ context.Context, communityID, id string, status types.ProviderStatus) error {
	p, ok := f.providers[id]
	if !ok || p.CommunityID != communityID {
		return queries.ErrNotFound
	}
	p.Status = status
	f.providers[id] = p
	return nil
}

func (f *fakeStore) RotateProviderToken(context.Context, string, string, string) error { return nil }

func (f *fakeStore) DeleteProvider(context.Context, string, string) error { return nil }

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return testNow }
	return svc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func request(validUntil *time.Time) ProviderRequest {
	return ProviderRequest{
		Name:        " Kiran ",
		Company:     "FixIt",
		ServiceType: types.ServiceElectrician,
		Phone:       "+919800000200",
		ValidUntil:  validUntil,
	}
}

func TestCreateProvider(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	until := testNow.Add(30 * 24 * time.Hour)

	provider, err := svc.Create(context.Background(), "c1", request(&until))
	require.NoError(t, err)
	assert.Equal(t, "Kiran", provider.Name)
	assert.Equal(t, types.ProviderActive, provider.Status)
	assert.Contains(t, provider.QRToken, "svc_")

	_, err = svc.Create(context.Background(), "c1", request(nil))
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestCreateProviderRejectsClosedWindow(t *testing.T) {
	svc := newTestService(newFakeStore())
	past := testNow.Add(-time.Minute)

	_, err := svc.Create(context.Background(), "c1", request(&past))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUpdateProviderValidUntil(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	unchanged := *store.providers["p1"].ValidUntil
	req := request(&unchanged)
	req.Phone = "+919800000100"
	_, err := svc.Update(ctx, "c1", "p1", req)
	require.NoError(t, err, "an unchanged expired window stays editable")

	earlier := unchanged.Add(-time.Hour)
	req.ValidUntil = &earlier
	_, err = svc.Update(ctx, "c1", "p1", req)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	extended := testNow.Add(7 * 24 * time.Hour)
	req.ValidUntil = &extended
	updated, err := svc.Update(ctx, "c1", "p1", req)
	require.NoError(t, err)
	assert.False(t, updated.Expired(testNow))

	_, err = svc.Update(ctx, "c2", "p1", req)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestSetProviderStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	provider, err := svc.SetStatus(context.Background(), "c1", "p1", types.ProviderBlocked)
	require.NoError(t, err)
	assert.Equal(t, types.ProviderBlocked, provider.Status)

	_, err = svc.SetStatus(context.Background(), "c2", "p1", types.ProviderActive)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
