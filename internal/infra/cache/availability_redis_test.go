package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type countingStore struct {
	weeklyCalls   int
	bookingsCalls int
	blockedCalls  int

	weekly   *models.WeeklyAvailability
	bookings []models.Booking
	blocked  []models.BlockedTime
	err      error
}

func (s *countingStore) GetWeeklyAvailability(context.Context, uint, time.Weekday) (*models.WeeklyAvailability, error) {
	s.weeklyCalls++
	return s.weekly, s.err
}

func (s *countingStore) ListActiveBookings(context.Context, uint, string) ([]models.Booking, error) {
	s.bookingsCalls++
	return s.bookings, s.err
}

func (s *countingStore) ListBlockedTimes(context.Context, uint) ([]models.BlockedTime, error) {
	s.blockedCalls++
	return s.blocked, s.err
}

func newCache(t *testing.T, store *countingStore) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewAvailabilityCache(store, rdb, time.Minute, nil), mr
}

func TestWeeklyIsReadThrough(t *testing.T) {
	store := &countingStore{weekly: &models.WeeklyAvailability{ID: 4, IsAvailable: true, StartTime: "10:00:00", EndTime: "15:00:00"}}
	c, mr := newCache(t, store)
	ctx := context.Background()

	first, err := c.GetWeeklyAvailability(ctx, 7, time.Wednesday)
	require.NoError(t, err)
	second, err := c.GetWeeklyAvailability(ctx, 7, time.Wednesday)
	require.NoError(t, err)

	assert.Equal(t, 1, store.weeklyCalls)
	assert.Equal(t, first.StartTime, second.StartTime)
	assert.True(t, mr.Exists("availability:weekly:7:3"))
	assert.Equal(t, time.Minute, mr.TTL("availability:weekly:7:3"))
}

func TestAbsentWeeklyIsCached(t *testing.T) {
	store := &countingStore{}
	c, _ := newCache(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		row, err := c.GetWeeklyAvailability(ctx, 7, time.Tuesday)
		require.NoError(t, err)
		assert.Nil(t, row)
	}
	assert.Equal(t, 1, store.weeklyCalls)
}

func TestInvalidateBookings(t *testing.T) {
	store := &countingStore{bookings: []models.Booking{{ID: 1, Date: "2026-10-20", StartTime: "10:00:00", Status: "confirmed"}}}
	c, mr := newCache(t, store)
	ctx := context.Background()

	_, err := c.ListActiveBookings(ctx, 7, "2026-10-20")
	require.NoError(t, err)
	require.True(t, mr.Exists("availability:bookings:7:2026-10-20"))

	c.InvalidateBookings(ctx, 7, "2026-10-20")
	assert.False(t, mr.Exists("availability:bookings:7:2026-10-20"))

	rows, err := c.ListActiveBookings(ctx, 7, "2026-10-20")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, store.bookingsCalls)
}

func TestInvalidateWeeklyDropsEveryDay(t *testing.T) {
	store := &countingStore{}
	c, mr := newCache(t, store)
	ctx := context.Background()

	_, _ = c.GetWeeklyAvailability(ctx, 7, time.Monday)
	_, _ = c.GetWeeklyAvailability(ctx, 7, time.Friday)
	_, _ = c.GetWeeklyAvailability(ctx, 8, time.Friday)

	c.InvalidateWeekly(ctx, 7)

	assert.False(t, mr.Exists("availability:weekly:7:1"))
	assert.False(t, mr.Exists("availability:weekly:7:5"))
	assert.True(t, mr.Exists("availability:weekly:8:5"))
}

func TestStoreErrorsAreNotCached(t *testing.T) {
	store := &countingStore{err: errors.New("db down")}
	c, mr := newCache(t, store)

	_, err := c.ListBlockedTimes(context.Background(), 7)

	assert.Error(t, err)
	assert.False(t, mr.Exists("availability:blocked:7"))
}

func TestRedisDownFallsThrough(t *testing.T) {
	start := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	store := &countingStore{blocked: []models.BlockedTime{{ID: 1, StartDatetime: start, EndDatetime: start.Add(time.Hour)}}}
	c, mr := newCache(t, store)
	mr.Close()

	rows, err := c.ListBlockedTimes(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, store.blockedCalls)
}
