// Package component defines the lifecycle contract for long-lived resources
// and a Registry that starts them in order and stops them in reverse.
//
//	reg := component.NewRegistry(log)
//	_ = reg.Register(redis.NewComponent[Order](cfg.Redis, log))
//	if err := reg.StartAll(ctx); err != nil {
//	    return err
//	}
//	defer reg.StopAll(context.Background())
package component
