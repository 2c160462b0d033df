package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	communities map[string]types.Community
	users       map[string]types.User
	accounts    map[string]types.Account
	residents   []types.Resident
	createErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		communities: map[string]types.Community{},
		users:       map[string]types.User{},
		accounts:    map[string]types.Account{},
	}
}

func (f *fakeStore) GetCommunityByCode(_ context.Context, code string) (types.Community, error) {
	c, ok := f.communities[code]
	if !ok {
		return types.Community{}, queries.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) CreateResident(_ context.Context, r types.Resident, account *types.User) (types.Resident, error) {
	if f.createErr != nil {
		return types.Resident{}, f.createErr
	}
	r.ID = "r1"
	f.residents = append(f.residents, r)
	if account != nil {
		account.ID = "u-" + r.ID
		f.users[account.ID] = *account
	}
	return r, nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (types.User, error) {
	u, ok := f.users[id]
	if !ok {
		return types.User{}, queries.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, queries.ErrNotFound
}

func (f *fakeStore) GetAccount(_ context.Context, id string) (types.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return types.Account{}, queries.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, id, hash string) error {
	u := f.users[id]
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func (f *fakeStore) TouchLogin(context.Context, string, time.Time) error { return nil }

func init() {
	shared.PasswordCost = bcrypt.MinCost
}

func newTestService(store Store) *Service {
	tokens := shared.NewTokenManager("access", "refresh", time.Minute, time.Hour, "community-api")
	return NewService(store, tokens)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *utils.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	return apiErr.Status
}

func (f *fakeStore) addUser(t *testing.T, id, email, password string, status types.AccountStatus) {
	t.Helper()
	hash, err := shared.HashPassword(password)
	require.NoError(t, err)
	cid := "c1"
	active := types.CommunityActive
	f.users[id] = types.User{ID: id, Email: email, PasswordHash: hash, Role: types.RoleResident, Status: status, CommunityID: &cid}
	f.accounts[id] = types.Account{ID: id, Email: email, Role: types.RoleResident, Status: status, CommunityID: &cid, CommunityStatus: &active}
}

func TestRegisterCreatesPendingResident(t *testing.T) {
	store := newFakeStore()
	store.communities["green-acres"] = types.Community{ID: "c1", Code: "green-acres", Status: types.CommunityActive}
	svc := newTestService(store)

	resident, err := svc.Register(context.Background(), RegisterRequest{
		CommunityCode: "green-acres",
		Name:          " Asha ",
		Email:         "Asha@Example.com",
		Phone:         "+919800000001",
		Password:      "secret-pass",
		Block:         "A",
		FlatNumber:    "101",
		Ownership:     types.OwnershipOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, types.ResidentPending, resident.Status)
	assert.Equal(t, "asha@example.com", resident.Email)
	assert.Equal(t, "Asha", resident.Name)
	assert.Equal(t, "c1", resident.CommunityID)

	kind, ok := shared.ParseGateToken(resident.QRToken)
	require.True(t, ok)
	assert.Equal(t, types.PersonResident, kind)

	account := store.users["u-r1"]
	assert.Equal(t, types.AccountPending, account.Status)
	assert.Equal(t, types.RoleResident, account.Role)
	assert.True(t, shared.CheckPassword(account.PasswordHash, "secret-pass"))
}

func TestRegisterRejectsUnknownOrInactiveCommunity(t *testing.T) {
	store := newFakeStore()
	store.communities["closed"] = types.Community{ID: "c2", Code: "closed", Status: types.CommunityInactive}
	svc := newTestService(store)

	for _, code := range []string{"missing", "closed"} {
		_, err := svc.Register(context.Background(), RegisterRequest{CommunityCode: code, Password: "secret-pass"})
		assert.Equal(t, http.StatusNotFound, statusOf(t, err), code)
	}
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	store := newFakeStore()
	store.communities["green-acres"] = types.Community{ID: "c1", Status: types.CommunityActive}
	store.createErr = queries.ErrDuplicate
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{CommunityCode: "green-acres", Password: "secret-pass"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	store.addUser(t, "u1", "asha@example.com", "secret-pass", types.AccountActive)
	store.addUser(t, "u2", "pending@example.com", "secret-pass", types.AccountPending)
	store.addUser(t, "u3", "blocked@example.com", "secret-pass", types.AccountSuspended)
	svc := newTestService(store)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "u1", resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)

	cases := []struct {
		email, password string
		status          int
		message         string
	}{
		{"asha@example.com", "wrong-pass", http.StatusUnauthorized, invalidCredentials},
		{"nobody@example.com", "secret-pass", http.StatusUnauthorized, invalidCredentials},
		{"pending@example.com", "secret-pass", http.StatusForbidden, "account pending approval"},
		{"blocked@example.com", "secret-pass", http.StatusForbidden, "account suspended"},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), LoginRequest{Email: tc.email, Password: tc.password})
		assert.Equal(t, tc.status, statusOf(t, err), tc.email)
		assert.EqualError(t, err, tc.message)
	}
}

func TestRefresh(t *testing.T) {
	store := newFakeStore()
	store.addUser(t, "u1", "asha@example.com", "secret-pass", types.AccountActive)
	svc := newTestService(store)

	login, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	account := store.accounts["u1"]
	account.Status = types.AccountSuspended
	store.accounts["u1"] = account
	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestChangePassword(t *testing.T) {
	store := newFakeStore()
	store.addUser(t, "u1", "asha@example.com", "secret-pass", types.AccountActive)
	svc := newTestService(store)
	principal := types.Principal{UserID: "u1", Role: types.RoleResident}

	err := svc.ChangePassword(context.Background(), principal, ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-secret"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	require.NoError(t, svc.ChangePassword(context.Background(), principal,
		ChangePasswordRequest{CurrentPassword: "secret-pass", NewPassword: "new-secret"}))
	_, err = svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "new-secret"})
	assert.NoError(t, err)
}

func TestMeLinksSubject(t *testing.T) {
	store := newFakeStore()
	store.addUser(t, "u1", "asha@example.com", "secret-pass", types.AccountActive)
	svc := newTestService(store)

	me, err := svc.Me(context.Background(), types.Principal{UserID: "u1", Role: types.RoleResident, SubjectID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", me.ResidentID)
	assert.Empty(t, me.EmployeeID)
}
