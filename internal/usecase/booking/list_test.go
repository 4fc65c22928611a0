package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestListBookingsByDate(t *testing.T) {
	repo := seeded()
	repo.bookings[1].Services = []models.BarberService{{Name: "Haircut"}}
	repo.bookings[1].Client = models.Client{Name: "Jane", Phone: "555"}

	out, err := NewListBookingsByDate(repo).Execute(context.Background(), 7, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", repo.lastFrom)
	assert.Equal(t, "2026-10-21", repo.lastTo)
	require.Len(t, out, 1)
	assert.Equal(t, "2:00 PM", out[0].Slot)
	assert.Equal(t, []string{"Haircut"}, out[0].Services)
	assert.Equal(t, "Jane", out[0].ClientName)
}

func TestListBookingsByMonth_AllBarbers(t *testing.T) {
	repo := seeded()

	out, err := NewListBookingsByMonth(repo).Execute(context.Background(), 0, 2026, 10)

	require.NoError(t, err)
	assert.Equal(t, uint(0), repo.lastBarb)
	assert.Equal(t, "2026-10-01", repo.lastFrom)
	assert.Equal(t, "2026-11-01", repo.lastTo)
	assert.Len(t, out, 3)
}

func TestListBookingsByMonth_December(t *testing.T) {
	repo := seeded()

	_, err := NewListBookingsByMonth(repo).Execute(context.Background(), 7, 2026, 12)

	require.NoError(t, err)
	assert.Equal(t, "2027-01-01", repo.lastTo)
}
