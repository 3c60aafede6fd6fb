package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/redisfacade/component"
	"github.com/kbukum/redisfacade/logger"
)

// Component manages a Facade for use with component.Registry.
type Component[T any] struct {
	cfg    Config
	log    *logger.Logger
	opts   []ClientOption
	facade *Facade[T]
	mu     sync.RWMutex
}

var (
	_ component.Component   = (*Component[any])(nil)
	_ component.Describable = (*Component[any])(nil)
)

// NewComponent creates a component that opens a facade on Start.
func NewComponent[T any](cfg Config, log *logger.Logger, opts ...ClientOption) *Component[T] {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Component[T]{
		cfg:  cfg,
		log:  log.WithComponent("redis"),
		opts: opts,
	}
}

// Facade returns the open facade, or nil before Start and after Stop.
func (c *Component[T]) Facade() *Facade[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.facade
}

// Name returns the component name.
func (c *Component[T]) Name() string { return "redis" }

// Start opens the facade and verifies connectivity with PING.
func (c *Component[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.facade != nil {
		return fmt.Errorf("redis component already started")
	}

	f, err := Open[T](c.cfg, c.log, c.opts...)
	if err != nil {
		return fmt.Errorf("redis start: %w", err)
	}
	if err := f.Client().Ping(ctx); err != nil {
		_ = f.Close()
		return fmt.Errorf("redis start ping: %w", err)
	}

	c.facade = f
	c.log.Info("Redis component started", logger.Fields(logger.FieldAddr, f.Client().Addr()))
	return nil
}

// Stop closes the facade and its connection.
func (c *Component[T]) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.facade == nil {
		return nil
	}
	c.log.Info("Redis component stopping")
	err := c.facade.Close()
	c.facade = nil
	return err
}

// Health pings the server.
func (c *Component[T]) Health(ctx context.Context) component.Health {
	f := c.Facade()
	if f == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "redis not initialized",
		}
	}

	if err := f.Client().Ping(ctx); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}

	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe reports the address, database and TLS setting.
func (c *Component[T]) Describe() component.Description {
	return component.Description{
		Name:    "Redis",
		Type:    "redis",
		Details: fmt.Sprintf("%s db=%d ssl=%t", c.cfg.Addr, c.cfg.DB, c.cfg.SSL),
	}
}
