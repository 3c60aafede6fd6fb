package testutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/redisfacade/component"
	"github.com/kbukum/redisfacade/testutil"
)

type memComponent struct {
	name    string
	started bool
	data    map[string]string
	fail    error
}

func newMemComponent() *memComponent {
	return &memComponent{name: "mem", data: map[string]string{}}
}

func (m *memComponent) Name() string { return m.name }
func (m *memComponent) Start(ctx context.Context) error {
	if m.fail != nil {
		return m.fail
	}
	m.started = true
	return nil
}
func (m *memComponent) Stop(ctx context.Context) error {
	m.started = false
	return nil
}
func (m *memComponent) Health(ctx context.Context) component.Health {
	return component.Health{Name: m.name, Status: component.StatusHealthy}
}
func (m *memComponent) Reset(ctx context.Context) error {
	m.data = map[string]string{}
	return nil
}
func (m *memComponent) Snapshot(ctx context.Context) (interface{}, error) {
	cp := make(map[string]string, len(m.data))
	for k, v := range m.data {
		cp[k] = v
	}
	return cp, nil
}
func (m *memComponent) Restore(ctx context.Context, snapshot interface{}) error {
	data, ok := snapshot.(map[string]string)
	if !ok {
		return errors.New("invalid snapshot")
	}
	m.data = data
	return nil
}

var _ testutil.TestComponent = (*memComponent)(nil)

func TestTHelper_SetupStopsOnCleanup(t *testing.T) {
	mc := newMemComponent()
	t.Run("inner", func(t *testing.T) {
		testutil.T(t).Setup(mc)
		if !mc.started {
			t.Fatal("expected component to be started")
		}
	})
	if mc.started {
		t.Error("expected component to be stopped after subtest cleanup")
	}
}

func TestTHelper_SnapshotRestoreReset(t *testing.T) {
	mc := newMemComponent()
	h := testutil.T(t).WithContext(context.Background())
	h.Setup(mc)

	mc.data["user:1"] = "ada"
	snap := h.Snapshot(mc)

	mc.data["user:2"] = "grace"
	h.Restore(mc, snap)
	if len(mc.data) != 1 || mc.data["user:1"] != "ada" {
		t.Errorf("unexpected restored state: %v", mc.data)
	}

	h.Reset(mc)
	if len(mc.data) != 0 {
		t.Errorf("expected empty state after reset, got %v", mc.data)
	}
}
