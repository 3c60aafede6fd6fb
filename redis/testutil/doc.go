// Package testutil provides an in-memory Redis test component for the redis
// facade.
//
// The component runs miniredis and implements both component.Component and
// testutil.TestComponent.
//
// # Quick Start
//
//	rc := testutil.NewComponent()
//	gotestutil.T(t).Setup(rc)
//
//	f, err := redis.Open[Order](rc.Config(), logger.Nop())
//
// # State Management
//
//	gotestutil.T(t).Reset(rc)             // flushes all keys
//	snap := gotestutil.T(t).Snapshot(rc)  // strings, geo sets and TTLs
//	gotestutil.T(t).Restore(rc, snap)
//
// Use Server().FastForward to expire keys without sleeping.
package testutil
