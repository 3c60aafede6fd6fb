// Package testutil defines TestComponent, a lifecycle component with
// Reset/Snapshot/Restore, and THelper, which ties those calls to a test.
//
// The redis/testutil package provides a miniredis-backed implementation.
package testutil
