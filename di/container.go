package di

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/kbukum/redisfacade/logger"
)

// RegistrationMode determines how a component should be resolved.
type RegistrationMode int

const (
	Eager     RegistrationMode = iota // Initialize immediately on registration
	Lazy                              // Initialize on first resolve
	Singleton                         // Pre-created instance
)

func (m RegistrationMode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	case Singleton:
		return "singleton"
	}
	return "unknown"
}

// Container is a keyed registry of constructors and instances.
//
// Constructors are functions with one of the shapes
//
//	func() T
//	func() (T, error)
//	func(context.Context) (T, error)
//	func(Container) (T, error)
type Container interface {
	Register(key string, constructor interface{}) error
	RegisterLazy(key string, constructor interface{}) error
	RegisterEager(key string, constructor interface{}) error
	RegisterSingleton(key string, instance interface{}) error
	Resolve(key string) (interface{}, error)

	// Close calls Close on every built instance that has one, in reverse
	// registration order, and forgets them.
	Close() error

	Registrations() []RegistrationInfo
}

// RegistrationInfo describes a registered component for introspection.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode
	Initialized bool
}

type registration struct {
	key         string
	order       int
	constructor interface{}
	mode        RegistrationMode
	instance    interface{}
	initialized bool
	mu          sync.Mutex
}

type container struct {
	components map[string]*registration
	next       int
	log        *logger.Logger
	mu         sync.RWMutex
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		components: make(map[string]*registration),
		log:        logger.Get("di"),
	}
}

// Register registers a lazy constructor; it is the common case.
func (c *container) Register(key string, constructor interface{}) error {
	return c.RegisterLazy(key, constructor)
}

// RegisterLazy registers a constructor that runs on first Resolve. A failed
// construction is not cached; the next Resolve tries again.
func (c *container) RegisterLazy(key string, constructor interface{}) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(&registration{key: key, constructor: constructor, mode: Lazy})
}

// RegisterEager runs the constructor immediately and stores the result.
func (c *container) RegisterEager(key string, constructor interface{}) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("register %s: %w", key, err)
	}
	instance, err := c.callConstructor(constructor)
	if err != nil {
		return fmt.Errorf("failed to initialize eager component '%s': %w", key, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(&registration{key: key, mode: Eager, instance: instance, initialized: true})
}

// RegisterSingleton stores a pre-built instance.
func (c *container) RegisterSingleton(key string, instance interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(&registration{key: key, mode: Singleton, instance: instance, initialized: true})
}

// add must be called with c.mu held.
func (c *container) add(reg *registration) error {
	if _, exists := c.components[reg.key]; exists {
		return fmt.Errorf("component already registered: %s", reg.key)
	}
	reg.order = c.next
	c.next++
	c.components[reg.key] = reg
	return nil
}

// Resolve returns the instance for key, constructing it if needed.
func (c *container) Resolve(key string) (interface{}, error) {
	c.mu.RLock()
	reg, exists := c.components[key]
	c.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("component not registered: %s", key)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.initialized {
		return reg.instance, nil
	}

	instance, err := c.callConstructor(reg.constructor)
	if err != nil {
		c.log.Debug("Lazy component initialization failed", logger.Fields(
			logger.FieldComponent, key,
			logger.FieldError, err.Error(),
		))
		return nil, fmt.Errorf("failed to initialize lazy component '%s': %w", key, err)
	}
	reg.instance = instance
	reg.initialized = true
	c.log.Debug("Lazy component initialized", logger.Fields(logger.FieldComponent, key))
	return instance, nil
}

// Registrations returns all registrations in registration order.
func (c *container) Registrations() []RegistrationInfo {
	regs := c.ordered()
	result := make([]RegistrationInfo, 0, len(regs))
	for _, reg := range regs {
		reg.mu.Lock()
		result = append(result, RegistrationInfo{Key: reg.key, Mode: reg.mode, Initialized: reg.initialized})
		reg.mu.Unlock()
	}
	return result
}

func (c *container) Close() error {
	regs := c.ordered()
	var errs []error
	for i := len(regs) - 1; i >= 0; i-- {
		reg := regs[i]
		reg.mu.Lock()
		if reg.initialized {
			if closer, ok := reg.instance.(interface{ Close() error }); ok {
				if err := closer.Close(); err != nil {
					errs = append(errs, fmt.Errorf("close %s: %w", reg.key, err))
				}
			}
			// Lazy components can be rebuilt after Close.
			if reg.mode == Lazy {
				reg.instance = nil
				reg.initialized = false
			}
		}
		reg.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (c *container) ordered() []*registration {
	c.mu.RLock()
	regs := make([]*registration, 0, len(c.components))
	for _, reg := range c.components {
		regs = append(regs, reg)
	}
	c.mu.RUnlock()
	sort.Slice(regs, func(i, j int) bool { return regs[i].order < regs[j].order })
	return regs
}

var (
	contextType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	containerType = reflect.TypeOf((*Container)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

func checkConstructor(constructor interface{}) error {
	fn := reflect.ValueOf(constructor)
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("constructor must be a function, got %T", constructor)
	}
	t := fn.Type()
	switch t.NumIn() {
	case 0:
	case 1:
		if t.In(0) != contextType && t.In(0) != containerType {
			return fmt.Errorf("constructor argument must be context.Context or di.Container, got %s", t.In(0))
		}
	default:
		return fmt.Errorf("constructor takes at most one argument")
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return fmt.Errorf("constructor second result must be error")
		}
	default:
		return fmt.Errorf("constructor must return either (instance) or (instance, error)")
	}
	return nil
}

func (c *container) callConstructor(constructor interface{}) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	var args []reflect.Value
	if fn.Type().NumIn() == 1 {
		if fn.Type().In(0) == contextType {
			args = []reflect.Value{reflect.ValueOf(context.Background())}
		} else {
			args = []reflect.Value{reflect.ValueOf(Container(c))}
		}
	}

	results := fn.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}
