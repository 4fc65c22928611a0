package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// AvailabilityCache is a read-through cache in front of an availability.Store.
// Redis errors never fail a read; they fall through to the store. A missing
// weekly row is cached as JSON null.
type AvailabilityCache struct {
	next    availability.Store
	rdb     *redis.Client
	ttl     time.Duration
	metrics *metrics.BookingMetrics
}

func NewAvailabilityCache(
	next availability.Store,
	rdb *redis.Client,
	ttl time.Duration,
	m *metrics.BookingMetrics,
) *AvailabilityCache {
	return &AvailabilityCache{next: next, rdb: rdb, ttl: ttl, metrics: m}
}

func weeklyKey(barberID uint, day time.Weekday) string {
	return fmt.Sprintf("availability:weekly:%d:%d", barberID, int(day))
}

func bookingsKey(barberID uint, date string) string {
	return fmt.Sprintf("availability:bookings:%d:%s", barberID, date)
}

func blockedKey(barberID uint) string {
	return fmt.Sprintf("availability:blocked:%d", barberID)
}

func (c *AvailabilityCache) GetWeeklyAvailability(
	ctx context.Context,
	barberID uint,
	day time.Weekday,
) (*models.WeeklyAvailability, error) {

	key := weeklyKey(barberID, day)

	var cached *models.WeeklyAvailability
	if c.load(ctx, "weekly", key, &cached) {
		return cached, nil
	}

	row, err := c.next.GetWeeklyAvailability(ctx, barberID, day)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, row)
	return row, nil
}

func (c *AvailabilityCache) ListActiveBookings(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Booking, error) {

	key := bookingsKey(barberID, date)

	var cached []models.Booking
	if c.load(ctx, "bookings", key, &cached) {
		return cached, nil
	}

	rows, err := c.next.ListActiveBookings(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, rows)
	return rows, nil
}

func (c *AvailabilityCache) ListBlockedTimes(
	ctx context.Context,
	barberID uint,
) ([]models.BlockedTime, error) {

	key := blockedKey(barberID)

	var cached []models.BlockedTime
	if c.load(ctx, "blocked", key, &cached) {
		return cached, nil
	}

	rows, err := c.next.ListBlockedTimes(ctx, barberID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, rows)
	return rows, nil
}

// --------------------------------------------------
// Invalidation
// --------------------------------------------------

func (c *AvailabilityCache) InvalidateWeekly(ctx context.Context, barberID uint) {
	keys := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		keys = append(keys, weeklyKey(barberID, d))
	}
	c.del(ctx, keys...)
}

func (c *AvailabilityCache) InvalidateBookings(ctx context.Context, barberID uint, date string) {
	c.del(ctx, bookingsKey(barberID, date))
}

func (c *AvailabilityCache) InvalidateBlocked(ctx context.Context, barberID uint) {
	c.del(ctx, blockedKey(barberID))
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (c *AvailabilityCache) load(ctx context.Context, source, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("availability cache read failed")
		}
		c.metrics.ObserveCache(source, false)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("availability cache entry corrupt")
		c.metrics.ObserveCache(source, false)
		return false
	}

	c.metrics.ObserveCache(source, true)
	return true
}

func (c *AvailabilityCache) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("availability cache write failed")
	}
}

func (c *AvailabilityCache) del(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Strs("keys", keys).Msg("availability cache invalidation failed")
	}
}

var (
	_ availability.Store       = (*AvailabilityCache)(nil)
	_ availability.Invalidator = (*AvailabilityCache)(nil)
)
