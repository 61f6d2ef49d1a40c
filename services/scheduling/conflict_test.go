package scheduling

import (
	"context"
	"errors"
	"testing"

	"slotbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeReader returns its rows regardless of the query, like a loosely indexed store.
type fakeReader struct {
	rows []models.Booking
	err  error
}

func (f *fakeReader) ListByProviderAndDate(_ context.Context, _ models.ProviderID, _ string) ([]models.Booking, error) {
	return f.rows, f.err
}

var (
	providerA = models.NewProviderID()
	providerB = models.NewProviderID()
)

func existing(provider models.ProviderID, date, start, end string, status models.BookingStatus) models.Booking {
	return models.Booking{
		ID:         primitive.NewObjectID(),
		ProviderID: provider,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	}
}

func TestHasConflict_TouchingBoundaryIsFree(t *testing.T) {
	c := NewConflictChecker(&fakeReader{rows: []models.Booking{
		existing(providerA, "2026-10-19", "10:00", "11:00", models.StatusConfirmed),
	}})
	taken, err := c.HasConflict(context.Background(), providerA, "2026-10-19", "11:00", "12:00", primitive.NilObjectID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = c.HasConflict(context.Background(), providerA, "2026-10-19", "09:00", "10:00", primitive.NilObjectID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestHasConflict_Overlap(t *testing.T) {
	c := NewConflictChecker(&fakeReader{rows: []models.Booking{
		existing(providerA, "2026-10-19", "10:00", "11:00", models.StatusConfirmed),
	}})
	taken, err := c.HasConflict(context.Background(), providerA, "2026-10-19", "10:30", "11:30", primitive.NilObjectID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestHasConflict_IgnoresCancelledOtherProvidersAndDates(t *testing.T) {
	c := NewConflictChecker(&fakeReader{rows: []models.Booking{
		existing(providerA, "2026-10-19", "10:00", "11:00", models.StatusCancelled),
		existing(providerB, "2026-10-19", "10:00", "11:00", models.StatusConfirmed),
		existing(providerA, "2026-10-20", "10:00", "11:00", models.StatusConfirmed),
	}})
	taken, err := c.HasConflict(context.Background(), providerA, "2026-10-19", "10:00", "11:00", primitive.NilObjectID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestHasConflict_CompletedAndNoShowStillOccupy(t *testing.T) {
	for _, st := range []models.BookingStatus{models.StatusCompleted, models.StatusNoShow} {
		c := NewConflictChecker(&fakeReader{rows: []models.Booking{
			existing(providerA, "2026-10-19", "10:00", "11:00", st),
		}})
		taken, err := c.HasConflict(context.Background(), providerA, "2026-10-19", "10:15", "10:45", primitive.NilObjectID)
		require.NoError(t, err)
		assert.True(t, taken, st)
	}
}

func TestHasConflict_ExcludesSelf(t *testing.T) {
	self := existing(providerA, "2026-10-19", "10:00", "11:00", models.StatusConfirmed)
	c := NewConflictChecker(&fakeReader{rows: []models.Booking{self}})
	taken, err := c.HasConflict(context.Background(), providerA, "2026-10-19", "10:00", "11:00", self.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestHasConflict_StringStoredProviderMatches(t *testing.T) {
	// Decoded from a legacy row where providerId was saved as a hex string.
	legacy, err := models.ParseProviderID(providerA.String())
	require.NoError(t, err)
	row := existing(legacy, "2026-10-19", "10:00", "11:00", models.StatusConfirmed)

	c := NewConflictChecker(&fakeReader{rows: []models.Booking{row}})
	taken, err := c.HasConflict(context.Background(), providerA, "2026-10-19", "10:00", "10:30", primitive.NilObjectID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestHasConflict_Errors(t *testing.T) {
	c := NewConflictChecker(&fakeReader{})

	_, err := c.HasConflict(context.Background(), models.ProviderID{}, "2026-10-19", "10:00", "11:00", primitive.NilObjectID)
	assert.ErrorIs(t, err, ErrInvalidProviderID)

	_, err = c.HasConflict(context.Background(), providerA, "2026-10-19", "11:00", "10:00", primitive.NilObjectID)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = c.HasConflict(context.Background(), providerA, "tomorrow", "10:00", "11:00", primitive.NilObjectID)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	storeErr := errors.New("store down")
	c = NewConflictChecker(&fakeReader{err: storeErr})
	_, err = c.HasConflict(context.Background(), providerA, "2026-10-19", "10:00", "11:00", primitive.NilObjectID)
	assert.ErrorIs(t, err, storeErr)
}

func TestResolveProviderID(t *testing.T) {
	id, err := ResolveProviderID(providerA.String())
	require.NoError(t, err)
	assert.True(t, id.Equal(providerA))

	id, err = ResolveProviderID(providerA.ObjectID())
	require.NoError(t, err)
	assert.True(t, id.Equal(providerA))

	_, err = ResolveProviderID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidProviderID)
}
