package testutil

import (
	"context"

	"github.com/kbukum/redisfacade/component"
)

// TestComponent is a component.Component whose state can be cleared,
// captured and put back between test cases.
type TestComponent interface {
	component.Component

	// Reset clears all state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state for a later Restore.
	Snapshot(ctx context.Context) (interface{}, error)

	// Restore replaces the current state with a value returned by Snapshot.
	Restore(ctx context.Context, snapshot interface{}) error
}
