// Package di provides a small dependency injection container with eager,
// lazy and singleton registrations and generic typed resolution.
//
//	c := di.NewContainer()
//	_ = c.RegisterSingleton(di.Keys.Logger, log)
//	_ = redis.Provide[Order](c, di.Keys.Redis, cfg.Redis, log)
//
//	orders, err := di.Resolve[*redis.Facade[Order]](c, di.Keys.Redis)
//	defer c.Close()
package di
