package redis

import (
	"context"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/redisfacade/logger"
	"github.com/kbukum/redisfacade/observability"
)

// Client owns one go-redis connection pool.
type Client struct {
	rdb    *goredis.Client
	log    *logger.Logger
	cfg    Config
	closed bool
	mu     sync.Mutex
}

// ClientOption customizes New.
type ClientOption func(*clientOptions)

type clientOptions struct {
	tracer  trace.Tracer
	metrics *observability.CommandMetrics
	hooks   []goredis.Hook
}

// WithTracer sets the tracer used for command spans. The default is the
// global provider's tracer.
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(o *clientOptions) { o.tracer = tracer }
}

// WithMetrics records command counts and latency on m.
func WithMetrics(m *observability.CommandMetrics) ClientOption {
	return func(o *clientOptions) { o.metrics = m }
}

// WithHook installs an extra go-redis hook after the instrumentation hook.
func WithHook(h goredis.Hook) ClientOption {
	return func(o *clientOptions) { o.hooks = append(o.hooks, h) }
}

// New creates a client from cfg. No connection is made until the first
// command or Ping.
func New(cfg Config, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	if log == nil {
		log = logger.Get("redis")
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = observability.Tracer(observability.InstrumentationName)
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		TLSConfig:       cfg.TLSConfig(),
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxRetries:      cfg.MaxRetries,
		DialTimeout:     duration(cfg.DialTimeout),
		ReadTimeout:     duration(cfg.ReadTimeout),
		WriteTimeout:    duration(cfg.WriteTimeout),
		PoolTimeout:     duration(cfg.PoolTimeout),
		ConnMaxIdleTime: duration(cfg.ConnMaxIdleTime),
		ConnMaxLifetime: duration(cfg.ConnMaxLifetime),
	})
	rdb.AddHook(newInstrumentationHook(o.tracer, o.metrics, cfg.DB))
	for _, h := range o.hooks {
		rdb.AddHook(h)
	}

	log.Info("Redis client created", logger.Fields(
		logger.FieldAddr, cfg.Addr,
		"db", cfg.DB,
		"ssl", cfg.SSL,
		"pool_size", cfg.PoolSize,
	))

	return &Client{rdb: rdb, log: log, cfg: cfg}, nil
}

// Ping verifies the Redis connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	pong, err := c.rdb.Ping(ctx).Result()
	if err != nil {
		return classify("PING", err)
	}
	if pong != "PONG" {
		return fmt.Errorf("unexpected redis ping response: %s", pong)
	}
	return nil
}

// Addr returns the configured server address.
func (c *Client) Addr() string {
	return c.cfg.Addr
}

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() Config {
	return c.cfg
}

// Close closes the connection pool. Safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.log.Info("Closing Redis connection", logger.Fields(logger.FieldAddr, c.cfg.Addr))
	c.closed = true
	return c.rdb.Close()
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Unwrap returns the underlying go-redis client for advanced operations.
func (c *Client) Unwrap() *goredis.Client {
	return c.rdb
}
