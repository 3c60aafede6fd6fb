package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisfacade/component"
	"github.com/kbukum/redisfacade/redis"
	"github.com/kbukum/redisfacade/testutil"
)

// Component is an in-memory Redis server backed by miniredis. It implements
// both component.Component and testutil.TestComponent.
//
// miniredis has no RedisJSON module, so JSON operations need a real server.
type Component struct {
	mini    *miniredis.Miniredis
	client  *goredis.Client
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*Component)(nil)
var _ testutil.TestComponent = (*Component)(nil)

// Snapshot is the state captured by Component.Snapshot. Geo sets are sorted
// sets and are captured with their geohash scores.
type Snapshot struct {
	Strings    map[string]string
	SortedSets map[string]map[string]float64
	TTLs       map[string]time.Duration
}

// NewComponent creates a new in-memory Redis test component.
func NewComponent() *Component {
	return &Component{}
}

// Client returns a raw go-redis client for seeding and inspecting state, or
// nil if not started.
func (c *Component) Client() *goredis.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Server returns the miniredis instance, for FastForward and direct access.
func (c *Component) Server() *miniredis.Miniredis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mini
}

// Config returns a redis.Config pointing at the in-memory server.
func (c *Component) Config() redis.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mini == nil {
		return redis.Config{}
	}
	return redis.Config{Addr: c.mini.Addr()}
}

// Name returns the component name.
func (c *Component) Name() string { return "redis-test" }

// Start launches the in-memory Redis server.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}

	mini, err := miniredis.Run()
	if err != nil {
		return fmt.Errorf("failed to start miniredis: %w", err)
	}

	c.mini = mini
	c.client = goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	c.started = true
	return nil
}

// Stop shuts down the in-memory Redis server.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	if c.client != nil {
		_ = c.client.Close()
	}
	if c.mini != nil {
		c.mini.Close()
	}
	c.started = false
	return nil
}

// Health returns the health status.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "not started",
		}
	}
	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Reset flushes all keys from the in-memory Redis.
func (c *Component) Reset(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.mini == nil {
		return fmt.Errorf("component not started")
	}
	c.mini.FlushAll()
	return nil
}

// Snapshot captures string keys, sorted sets (including geo sets) and their
// TTLs. Other types are skipped.
func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.mini == nil {
		return nil, fmt.Errorf("component not started")
	}

	snap := &Snapshot{
		Strings:    make(map[string]string),
		SortedSets: make(map[string]map[string]float64),
		TTLs:       make(map[string]time.Duration),
	}
	for _, key := range c.mini.Keys() {
		switch c.mini.Type(key) {
		case "string":
			val, err := c.mini.Get(key)
			if err != nil {
				return nil, fmt.Errorf("failed to snapshot key %q: %w", key, err)
			}
			snap.Strings[key] = val
		case "zset":
			set, err := c.mini.SortedSet(key)
			if err != nil {
				return nil, fmt.Errorf("failed to snapshot key %q: %w", key, err)
			}
			snap.SortedSets[key] = set
		default:
			continue
		}
		if ttl := c.mini.TTL(key); ttl > 0 {
			snap.TTLs[key] = ttl
		}
	}
	return snap, nil
}

// Restore returns the Redis state to a previously captured snapshot.
func (c *Component) Restore(_ context.Context, snap interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.mini == nil {
		return fmt.Errorf("component not started")
	}

	snapshot, ok := snap.(*Snapshot)
	if !ok {
		return fmt.Errorf("invalid snapshot type: expected *testutil.Snapshot, got %T", snap)
	}

	c.mini.FlushAll()
	for key, val := range snapshot.Strings {
		if err := c.mini.Set(key, val); err != nil {
			return fmt.Errorf("failed to restore key %q: %w", key, err)
		}
	}
	for key, members := range snapshot.SortedSets {
		for member, score := range members {
			if _, err := c.mini.ZAdd(key, score, member); err != nil {
				return fmt.Errorf("failed to restore key %q: %w", key, err)
			}
		}
	}
	for key, ttl := range snapshot.TTLs {
		c.mini.SetTTL(key, ttl)
	}
	return nil
}
