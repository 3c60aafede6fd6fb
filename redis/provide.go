package redis

import (
	"fmt"

	"github.com/kbukum/redisfacade/di"
	"github.com/kbukum/redisfacade/logger"
	"github.com/kbukum/redisfacade/observability"
)

// Provide registers a lazily opened *Facade[T] under key. The facade is
// created on first resolve and closed by container.Close. A
// *observability.CommandMetrics registered under di.Keys.Metrics is picked up
// unless opts carry WithMetrics.
//
//	if err := redis.Provide[Order](c, di.Keys.Redis, cfg.Redis, log); err != nil {
//	    return err
//	}
//	orders := di.MustResolve[*redis.Facade[Order]](c, di.Keys.Redis)
func Provide[T any](container di.Container, key string, cfg Config, log *logger.Logger, opts ...ClientOption) error {
	if err := container.RegisterLazy(key, func() (*Facade[T], error) {
		if metrics, ok := di.TryResolve[*observability.CommandMetrics](container, di.Keys.Metrics); ok {
			opts = append([]ClientOption{WithMetrics(metrics)}, opts...)
		}
		return Open[T](cfg, log, opts...)
	}); err != nil {
		return fmt.Errorf("provide redis facade: %w", err)
	}
	return nil
}
