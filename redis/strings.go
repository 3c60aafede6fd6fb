package redis

import (
	"context"
	stderrors "errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisfacade/errors"
)

// SetString stores value under key and returns the server status, "OK" on
// success.
func (f *Facade[T]) SetString(ctx context.Context, key Key, value string) (string, error) {
	const op = "SET"
	if err := requireKey(op, key); err != nil {
		return "", f.fail(op, key, err)
	}
	status, err := f.client.rdb.Set(ctx, key.name, value, 0).Result()
	if err != nil {
		return "", f.fail(op, key, classify(op, err))
	}
	return status, nil
}

// SetStringTTL stores value under key expiring after ttl, which must be at
// least one second.
func (f *Facade[T]) SetStringTTL(ctx context.Context, key Key, value string, ttl time.Duration) error {
	const op = "SETEX"
	if err := checkTTL(op, key, ttl); err != nil {
		return f.fail(op, key, err)
	}
	if err := f.client.rdb.SetEx(ctx, key.name, value, wholeSeconds(ttl)).Err(); err != nil {
		return f.fail(op, key, classify(op, err))
	}
	return nil
}

// GetString returns the string stored under key. A null or missing key
// yields ("", false, nil); the null key never reaches the server.
func (f *Facade[T]) GetString(ctx context.Context, key Key) (string, bool, error) {
	const op = "GET"
	if key.IsNull() {
		return "", false, nil
	}
	val, err := f.client.rdb.Get(ctx, key.name).Result()
	if stderrors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, f.fail(op, key, classify(op, err))
	}
	return val, true, nil
}

// DeleteKeys removes keys in one DEL and returns how many existed. Null keys
// are skipped; with none left no command is sent.
func (f *Facade[T]) DeleteKeys(ctx context.Context, keys ...Key) (int64, error) {
	const op = "DEL"
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if !k.IsNull() {
			names = append(names, k.name)
		}
	}
	if len(names) == 0 {
		return 0, nil
	}
	n, err := f.client.rdb.Del(ctx, names...).Result()
	if err != nil {
		return 0, f.fail(op, StringKey(names[0]), classify(op, err))
	}
	return n, nil
}

// SetBytes stores raw bytes under key and returns the server status.
func (f *Facade[T]) SetBytes(ctx context.Context, key Key, value []byte) (string, error) {
	const op = "SET"
	if err := requireKey(op, key); err != nil {
		return "", f.fail(op, key, err)
	}
	status, err := f.client.rdb.Set(ctx, key.name, value, 0).Result()
	if err != nil {
		return "", f.fail(op, key, classify(op, err))
	}
	return status, nil
}

// SetBinary encodes value with the binary codec and stores it under key.
func (f *Facade[T]) SetBinary(ctx context.Context, key Key, value T) (string, error) {
	const op = "SET"
	if err := requireKey(op, key); err != nil {
		return "", f.fail(op, key, err)
	}
	data, err := f.binary.Marshal(value)
	if err != nil {
		return "", f.fail(op, key, err)
	}
	return f.SetBytes(ctx, key, data)
}

// GetBytes reads key and decodes it with the binary codec. A missing key is
// a NOT_FOUND error.
func (f *Facade[T]) GetBytes(ctx context.Context, key Key) (T, error) {
	const op = "GET"
	var zero T
	if err := requireKey(op, key); err != nil {
		return zero, f.fail(op, key, err)
	}
	data, err := f.client.rdb.Get(ctx, key.name).Bytes()
	if stderrors.Is(err, goredis.Nil) {
		return zero, f.fail(op, key, errors.NotFound(key.name))
	}
	if err != nil {
		return zero, f.fail(op, key, classify(op, err))
	}
	var out T
	if err := f.binary.Unmarshal(data, &out); err != nil {
		return zero, f.fail(op, key, err)
	}
	return out, nil
}
