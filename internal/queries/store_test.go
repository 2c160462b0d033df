package queries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return New(sqlx.NewDb(db, "pgx")), mock
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "residents_phone_key"}, ErrDuplicate},
		{"exclusion", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}, ErrOverlap},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tc.in), tc.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	assert.NoError(t, mapError(nil))
}

func TestMapErrorKeepsConstraintName(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "23505", ConstraintName: "residents_email_key"})
	assert.Contains(t, err.Error(), "residents_email_key")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "residents_email_key", Constraint(err))
	assert.Empty(t, Constraint(ErrNotFound))
}

func TestFilterSkipsEmptyValues(t *testing.T) {
	f := scoped("c1").eq("status", "").eq("block", "A")
	assert.Equal(t, " WHERE community_id = ? AND block = ?", f.where())
	assert.Equal(t, []interface{}{"c1", "A"}, f.args)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern(" 50%_off "))
}

func TestGetResidentNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM residents WHERE community_id = $1 AND id = $2")).
		WithArgs("c1", "r1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetResident(context.Background(), "c1", "r1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDeliveriesPaginates(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM deliveries WHERE community_id = $1 AND status = $2")).
		WithArgs("c1", "received").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY received_at DESC LIMIT $3 OFFSET $4")).
		WithArgs("c1", "received", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "community_id", "status", "package_count"}).
			AddRow("d1", "c1", "received", 2))

	items, total, err := store.ListDeliveries(context.Background(), "c1",
		types.DeliveryFilter{Status: types.DeliveryReceived}, types.Pagination{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 41, total)
	require.Len(t, items, 1)
	assert.Equal(t, "d1", items[0].ID)
	assert.Equal(t, 2, items[0].PackageCount)
}

func TestLastGateEntryWithoutHistory(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("c1:resident:r1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM gate_entries").
		WithArgs("c1", "resident", "r1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	var last *types.GateEntry
	err := store.WithPersonLock(context.Background(), "c1", types.PersonResident, "r1", func(w GateWriter) error {
		var err error
		last, err = w.LastGateEntry(context.Background(), "c1", types.PersonResident, "r1")
		return err
	})
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestCreateGateEntryStampsInDatabase(t *testing.T) {
	store, mock := newMockStore(t)
	stamped := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`clock_timestamp\(\)\)\s+RETURNING created_at`).
		WithArgs(sqlmock.AnyArg(), "c1", "resident", "r1", "Asha", "entry", "Main", "qr", "", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(stamped))

	entry, err := store.CreateGateEntry(context.Background(), types.GateEntry{
		CommunityID: "c1",
		PersonType:  types.PersonResident,
		PersonID:    "r1",
		PersonName:  "Asha",
		Direction:   types.DirectionEntry,
		Gate:        "Main",
		Method:      types.EntryMethodQR,
		ScannedBy:   "u1",
		CreatedAt:   stamped.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, stamped, entry.CreatedAt)
}

func TestUpdateEmployeeRevokesLogin(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE employees").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET status = $1")).
		WithArgs("suspended", "c1", "e1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM employees WHERE").
		WithArgs("c1", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "designation"}).AddRow("e1", "housekeeping"))

	employee, err := store.UpdateEmployee(context.Background(), types.Employee{
		ID: "e1", CommunityID: "c1", Name: "Ravi", Phone: "+919800000009",
		Designation: types.DesignationHousekeeping, Shift: types.ShiftMorning,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, types.DesignationHousekeeping, employee.Designation)
}

func TestWithPersonLockRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := store.WithPersonLock(context.Background(), "c1", types.PersonGuest, "g1", func(GateWriter) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGenerateBillsCountsSkipped(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM residents WHERE community_id = $1 AND status = $2")).
		WithArgs("c1", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r1").AddRow("r2"))
	mock.ExpectExec("ON CONFLICT \\(resident_id, period\\) DO NOTHING").
		WithArgs(sqlmock.AnyArg(), "c1", "r1", "2024-05", "1500.5", "Maintenance", "2024-05-10", "unpaid", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("ON CONFLICT \\(resident_id, period\\) DO NOTHING").
		WithArgs(sqlmock.AnyArg(), "c1", "r2", "2024-05", "1500.5", "Maintenance", "2024-05-10", "unpaid", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	res, err := store.GenerateBills(context.Background(), types.Bill{
		CommunityID: "c1",
		Period:      "2024-05",
		Amount:      decimal.RequireFromString("1500.50"),
		Description: "Maintenance",
		DueDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, types.GenerateResult{Period: "2024-05", Created: 1, Skipped: 1}, res)
}

func TestListBillsOverdueFilter(t *testing.T) {
	store, mock := newMockStore(t)
	today := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM bills WHERE community_id = $1 AND status = $2 AND due_date < $3::date")).
		WithArgs("c1", "unpaid", "2024-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM bills WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, total, err := store.ListBills(context.Background(), "c1",
		types.BillFilter{Status: types.BillOverdue, Today: today}, types.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestListBillsUnpaidIncludesOverdue(t *testing.T) {
	store, mock := newMockStore(t)
	today := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM bills WHERE community_id = $1 AND status = $2") + "$").
		WithArgs("c1", "unpaid").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM bills WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := store.ListBills(context.Background(), "c1",
		types.BillFilter{Status: types.BillUnpaid, Today: today}, types.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPayBillAlreadyPaid(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE bills SET status").
		WithArgs("paid", sqlmock.AnyArg(), "upi", "ref-1", "c1", "b1", "unpaid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.PayBill(context.Background(), "c1", "b1", "upi", "ref-1", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionBookingRestrictsCurrentStatus(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = now() WHERE community_id = $2 AND id = $3 AND status IN ($4, $5)")).
		WithArgs("cancelled", "c1", "b1", "pending", "approved").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.TransitionBooking(context.Background(), "c1", "b1", types.BookingCancelled, "",
		types.BookingPending, types.BookingApproved)
	assert.NoError(t, err)
}

func TestCreateBookingOverlapConstraint(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})

	_, err := store.CreateBooking(context.Background(), types.Booking{CommunityID: "c1", AmenityID: "a1"})
	assert.ErrorIs(t, err, ErrOverlap)
}
