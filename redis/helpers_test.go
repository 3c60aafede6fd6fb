package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisfacade/logger"
)

type testOrder struct {
	ID    string  `json:"id"`
	Item  string  `json:"item"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// newTestFacade starts miniredis and returns a facade over it with RedisJSON
// emulated by hooks.
func newTestFacade[T any](t *testing.T, opts ...ClientOption) (*Facade[T], *miniredis.Miniredis, *jsonEmulator) {
	t.Helper()
	mini := miniredis.RunT(t)
	emu := &jsonEmulator{mini: mini}
	opts = append(opts, WithHook(emu))

	client, err := New(Config{Addr: mini.Addr()}, logger.Nop(), opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	f := NewFacade[T](client)
	t.Cleanup(func() { _ = f.Close() })
	return f, mini, emu
}

// jsonEmulator answers JSON.SET and JSON.GET from miniredis string values,
// since miniredis has no RedisJSON module. Transactions containing JSON.SET
// are applied directly. Setting abort makes every transaction fail as if
// EXEC had been discarded.
type jsonEmulator struct {
	mini *miniredis.Miniredis

	mu    sync.Mutex
	abort bool
}

func (e *jsonEmulator) setAbort(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abort = v
}

func (e *jsonEmulator) aborting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.abort
}

func (e *jsonEmulator) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (e *jsonEmulator) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		switch cmd.Name() {
		case "json.set":
			e.jsonSet(cmd)
			return nil
		case "json.get":
			return e.jsonGet(cmd)
		}
		return next(ctx, cmd)
	}
}

func (e *jsonEmulator) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		if len(cmds) > 0 && cmds[0].Name() == "multi" && e.aborting() {
			return goredis.TxFailedErr
		}
		if !hasCommand(cmds, "json.set") {
			return next(ctx, cmds)
		}
		for _, cmd := range cmds {
			switch cmd.Name() {
			case "json.set":
				e.jsonSet(cmd)
			case "expire":
				args := cmd.Args()
				e.mini.SetTTL(args[1].(string), time.Duration(args[2].(int64))*time.Second)
				cmd.(*goredis.BoolCmd).SetVal(true)
			}
		}
		return nil
	}
}

func (e *jsonEmulator) jsonSet(cmd goredis.Cmder) {
	args := cmd.Args()
	_ = e.mini.Set(args[1].(string), args[3].(string))
	cmd.(*goredis.StatusCmd).SetVal("OK")
}

func (e *jsonEmulator) jsonGet(cmd goredis.Cmder) error {
	doc, err := e.mini.Get(cmd.Args()[1].(string))
	if err != nil {
		cmd.SetErr(goredis.Nil)
		return goredis.Nil
	}
	cmd.(*goredis.JSONCmd).SetVal(doc)
	return nil
}

func hasCommand(cmds []goredis.Cmder, name string) bool {
	for _, cmd := range cmds {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

// commandRecorder records the name of every command that reaches it.
type commandRecorder struct {
	mu    sync.Mutex
	names []string
}

func (r *commandRecorder) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (r *commandRecorder) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		r.record(cmd.Name())
		return next(ctx, cmd)
	}
}

func (r *commandRecorder) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		for _, cmd := range cmds {
			r.record(cmd.Name())
		}
		return next(ctx, cmds)
	}
}

func (r *commandRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

// count returns how many recorded commands match name.
func (r *commandRecorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.names {
		if got == name {
			n++
		}
	}
	return n
}

// total returns how many commands were recorded, ignoring connection setup.
func (r *commandRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.names {
		if got != "hello" && got != "client" && got != "ping" {
			n++
		}
	}
	return n
}
