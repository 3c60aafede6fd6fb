package testutil

import (
	"context"
	"testing"
)

// THelper binds test components to a testing.TB.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T wraps t so component failures fail the test and components are stopped
// by t.Cleanup.
//
//	func TestOrders(t *testing.T) {
//	    rc := redistest.NewComponent()
//	    testutil.T(t).Setup(rc)
//	}
func T(t testing.TB) *THelper {
	return &THelper{t: t, ctx: context.Background()}
}

// WithContext sets the context passed to component calls.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Setup starts component and registers its Stop with t.Cleanup.
func (h *THelper) Setup(component TestComponent) {
	h.t.Helper()
	if err := component.Start(h.ctx); err != nil {
		h.t.Fatalf("failed to start component %s: %v", component.Name(), err)
	}

	h.t.Cleanup(func() {
		if err := component.Stop(h.ctx); err != nil {
			h.t.Errorf("failed to stop component %s: %v", component.Name(), err)
		}
	})
}

// Reset clears a component's state.
func (h *THelper) Reset(component TestComponent) {
	h.t.Helper()
	if err := component.Reset(h.ctx); err != nil {
		h.t.Fatalf("failed to reset component %s: %v", component.Name(), err)
	}
}

// Snapshot captures the current state of a component.
func (h *THelper) Snapshot(component TestComponent) interface{} {
	h.t.Helper()
	snapshot, err := component.Snapshot(h.ctx)
	if err != nil {
		h.t.Fatalf("failed to snapshot component %s: %v", component.Name(), err)
	}
	return snapshot
}

// Restore puts back a state captured by Snapshot.
func (h *THelper) Restore(component TestComponent, snapshot interface{}) {
	h.t.Helper()
	if err := component.Restore(h.ctx, snapshot); err != nil {
		h.t.Fatalf("failed to restore component %s: %v", component.Name(), err)
	}
}
