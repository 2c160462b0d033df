package importer

import (
	"context"
	"sync"
	"testing"

	"github.com/Conversly/community-api/internal/api/residents"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	mu     sync.Mutex
	emails map[string]bool
}

func (f *fakeCreator) Create(_ context.Context, communityID string, req residents.CreateResidentRequest) (types.Resident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emails[req.Email] {
		return types.Resident{}, utils.Conflict("a resident with email %s already exists", req.Email)
	}
	f.emails[req.Email] = true
	return types.Resident{CommunityID: communityID, Name: req.Name, Email: req.Email}, nil
}

func row(name, email string) residents.CreateResidentRequest {
	return residents.CreateResidentRequest{
		Name:       name,
		Email:      email,
		Phone:      "+919800000001",
		Block:      "A",
		FlatNumber: "101",
		Ownership:  types.OwnershipOwner,
	}
}

func TestImportCountsOutcomes(t *testing.T) {
	creator := &fakeCreator{emails: map[string]bool{"taken@example.com": true}}
	im, err := New(creator, 3)
	require.NoError(t, err)

	bad := row("No Email", "")
	bad.Phone = "call me"
	rows := []residents.CreateResidentRequest{
		row("Asha", "asha@example.com"),
		row("Taken", "taken@example.com"),
		bad,
		row("Vikram", "vikram@example.com"),
		row("Asha Again", "asha@example.com"),
	}

	report := im.Import(context.Background(), "c1", rows)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 2, report.Duplicates)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Contains(t, report.Errors[0].Message, "email (required)")
	assert.Contains(t, report.Errors[0].Message, "phone (phone)")
}

func TestImportStopsWhenCancelled(t *testing.T) {
	creator := &fakeCreator{emails: map[string]bool{}}
	im, err := New(creator, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := im.Import(ctx, "c1", []residents.CreateResidentRequest{row("Asha", "asha@example.com")})
	assert.Equal(t, 1, report.Total)
	assert.Zero(t, report.Created+report.Duplicates+report.Failed)
	assert.Equal(t, 1, report.Skipped)
}
