package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotCache keeps computed slot lists in redis for a few seconds. Slot
// lists are advisory anyway (the booking transaction re-validates), so a
// short TTL plus invalidation on writes is enough. A nil client disables
// the cache entirely.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(addr string) *SlotCache {
	if addr == "" {
		return &SlotCache{}
	}

	return &SlotCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    30 * time.Second,
	}
}

func slotsKey(barberID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", barberID, serviceID, date)
}

func (c *SlotCache) Get(ctx context.Context, barberID, serviceID uint, date string) ([]string, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, slotsKey(barberID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, barberID, serviceID uint, date string, slots []string) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.client.Set(ctx, slotsKey(barberID, serviceID, date), raw, c.ttl)
}

// InvalidateBarber drops every cached slot list for the barber. Called
// after bookings, cancellations and schedule changes.
func (c *SlotCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if c.client == nil {
		return
	}

	pattern := fmt.Sprintf("slots:%d:*", barberID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
