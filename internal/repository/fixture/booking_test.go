package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByClinicScopesToClinic(t *testing.T) {
	repo := NewBookingRepository()

	bookings, err := repo.ListByClinic(context.Background(), DefaultClinicID)
	require.NoError(t, err)
	assert.Len(t, bookings, 16)

	other, err := repo.ListByClinic(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListByClinicPreservesSourceOrder(t *testing.T) {
	repo := NewBookingRepository()

	bookings, err := repo.ListByClinic(context.Background(), DefaultClinicID)
	require.NoError(t, err)
	require.NotEmpty(t, bookings)

	// The set is served as stored, not re-sorted by id or start time.
	assert.Equal(t, int64(550), bookings[0].ID)
	assert.Equal(t, int64(561), bookings[1].ID)
	assert.Equal(t, int64(560), bookings[len(bookings)-1].ID)
}

func TestDefaultBookingsCoverEveryWindowState(t *testing.T) {
	repo := NewBookingRepository()

	bookings, err := repo.ListByClinic(context.Background(), DefaultClinicID)
	require.NoError(t, err)

	days := make(map[string]int)
	for _, b := range bookings {
		days[b.StartDay()]++
	}
	// The 11th carries multiple slots so morning, imminent and afternoon
	// appointments all exist on one day.
	assert.GreaterOrEqual(t, days["2025-06-11"], 3)
}
