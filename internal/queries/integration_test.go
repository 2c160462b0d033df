//go:build integration

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/loaders"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *queries.Store {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("community"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	client, err := loaders.NewPostgresClient(ctx, dsn, loaders.PoolOptions{ConnectAttempts: 5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.MigrateUp())

	return queries.New(client.DB)
}

func seedResident(t *testing.T, store *queries.Store) (types.Community, types.Resident) {
	t.Helper()
	ctx := context.Background()

	community, err := store.CreateCommunity(ctx, types.Community{Name: "Green Acres", Code: "green-acres", City: "Pune"})
	require.NoError(t, err)
	resident, err := store.CreateResident(ctx, types.Resident{
		CommunityID: community.ID,
		Name:        "Asha",
		Email:       "asha@example.com",
		Phone:       "+919800000001",
		Block:       "A",
		FlatNumber:  "101",
		Ownership:   types.OwnershipOwner,
		Status:      types.ResidentActive,
		QRToken:     "res_integration",
	}, nil)
	require.NoError(t, err)
	return community, resident
}

func TestIntegrationGateEntriesAlternate(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()
	community, resident := seedResident(t, store)

	var directions []types.Direction
	var stamps []time.Time
	for i := 0; i < 3; i++ {
		err := store.WithPersonLock(ctx, community.ID, types.PersonResident, resident.ID, func(w queries.GateWriter) error {
			last, err := w.LastGateEntry(ctx, community.ID, types.PersonResident, resident.ID)
			if err != nil {
				return err
			}
			entry, err := w.CreateGateEntry(ctx, types.GateEntry{
				CommunityID: community.ID,
				PersonType:  types.PersonResident,
				PersonID:    resident.ID,
				PersonName:  resident.Name,
				Direction:   types.NextDirection(last),
				Method:      types.EntryMethodQR,
				ScannedBy:   "guard",
				// A scan that read its clock earlier than the previous one.
				CreatedAt: time.Now().UTC().Add(-time.Duration(i) * time.Hour),
			})
			directions = append(directions, entry.Direction)
			stamps = append(stamps, entry.CreatedAt)
			return err
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []types.Direction{types.DirectionEntry, types.DirectionExit, types.DirectionEntry}, directions)
	assert.True(t, stamps[1].After(stamps[0]))
	assert.True(t, stamps[2].After(stamps[1]))

	last, err := store.LastGateEntry(ctx, community.ID, types.PersonResident, resident.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, types.DirectionEntry, last.Direction)

	inside, err := store.ListInside(ctx, community.ID)
	require.NoError(t, err)
	require.Len(t, inside, 1)
	assert.Equal(t, resident.ID, inside[0].PersonID)
}

func TestIntegrationBillsAndBookings(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()
	community, resident := seedResident(t, store)

	tmpl := types.Bill{
		CommunityID: community.ID,
		Period:      "2024-05",
		Amount:      decimal.RequireFromString("2500.00"),
		DueDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	first, err := store.GenerateBills(ctx, tmpl)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := store.GenerateBills(ctx, tmpl)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)

	summary, err := store.SummarizeBills(ctx, community.ID, "2024-05", "", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, summary.Overdue.Equal(decimal.NewFromInt(2500)))

	amenity, err := store.CreateAmenity(ctx, types.Amenity{
		CommunityID: community.ID, Name: "Clubhouse", OpenTime: "06:00", CloseTime: "22:00", Active: true,
	})
	require.NoError(t, err)
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	_, err = store.CreateBooking(ctx, types.Booking{
		CommunityID: community.ID, AmenityID: amenity.ID, ResidentID: resident.ID,
		StartsAt: start, EndsAt: start.Add(2 * time.Hour), Status: types.BookingApproved,
	})
	require.NoError(t, err)
	_, err = store.CreateBooking(ctx, types.Booking{
		CommunityID: community.ID, AmenityID: amenity.ID, ResidentID: resident.ID,
		StartsAt: start.Add(time.Hour), EndsAt: start.Add(3 * time.Hour), Status: types.BookingPending,
	})
	assert.ErrorIs(t, err, queries.ErrOverlap)
}
