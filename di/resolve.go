package di

import "fmt"

// Resolve returns the component under key as T.
//
//	orders, err := di.Resolve[*redis.Facade[Order]](c, di.Keys.Redis)
func Resolve[T any](c Container, key string) (T, error) {
	instance, err := c.Resolve(key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("di: failed to resolve %s: %w", key, err)
	}
	return as[T](key, instance)
}

// MustResolve is Resolve for wiring code where a missing component is a bug.
func MustResolve[T any](c Container, key string) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// TryResolve reports false when key is unregistered, fails to build, or
// holds something other than T. Optional dependencies use it.
func TryResolve[T any](c Container, key string) (T, bool) {
	v, err := Resolve[T](c, key)
	return v, err == nil
}

func as[T any](key string, instance any) (T, error) {
	v, ok := instance.(T)
	if !ok {
		return v, fmt.Errorf("di: component %s is %T, expected %T", key, instance, v)
	}
	return v, nil
}
