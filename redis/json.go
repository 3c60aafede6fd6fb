package redis

import (
	"context"
	stderrors "errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// rootPath addresses the whole document.
const rootPath = "$"

// JSONSet encodes value with the text codec and stores it as the document at
// key.
func (f *Facade[T]) JSONSet(ctx context.Context, key Key, value T) error {
	return f.jsonSet(ctx, key, value)
}

// JSONSetBytes stores value as a document. The slice itself is encoded by
// the text codec, so the JSON codec stores a base64 string.
func (f *Facade[T]) JSONSetBytes(ctx context.Context, key Key, value []byte) error {
	return f.jsonSet(ctx, key, value)
}

// JSONSetBytesTTL is JSONSetBytes followed by EXPIRE in one MULTI/EXEC. An
// aborted transaction leaves neither document nor expiry.
func (f *Facade[T]) JSONSetBytesTTL(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	return f.jsonSetTTL(ctx, key, value, ttl)
}

// JSONSetTTL is JSONSet followed by EXPIRE in one MULTI/EXEC.
func (f *Facade[T]) JSONSetTTL(ctx context.Context, key Key, value T, ttl time.Duration) error {
	return f.jsonSetTTL(ctx, key, value, ttl)
}

// JSONGet reads the document at key and decodes it into T. A missing
// document decodes an empty reply and so fails with DECODE_FAILED.
func (f *Facade[T]) JSONGet(ctx context.Context, key Key) (T, error) {
	const op = "JSON.GET"
	var zero T
	if err := requireKey(op, key); err != nil {
		return zero, f.fail(op, key, err)
	}
	doc, err := f.client.rdb.JSONGet(ctx, key.name).Result()
	if err != nil && !stderrors.Is(err, goredis.Nil) {
		return zero, f.fail(op, key, classify(op, err))
	}
	var out T
	if err := f.text.Unmarshal([]byte(doc), &out); err != nil {
		return zero, f.fail(op, key, err)
	}
	return out, nil
}

func (f *Facade[T]) jsonSet(ctx context.Context, key Key, value any) error {
	const op = "JSON.SET"
	if err := requireKey(op, key); err != nil {
		return f.fail(op, key, err)
	}
	doc, err := f.text.Marshal(value)
	if err != nil {
		return f.fail(op, key, err)
	}
	if err := f.client.rdb.JSONSet(ctx, key.name, rootPath, string(doc)).Err(); err != nil {
		return f.fail(op, key, classify(op, err))
	}
	return nil
}

func (f *Facade[T]) jsonSetTTL(ctx context.Context, key Key, value any, ttl time.Duration) error {
	const op = "MULTI JSON.SET EXPIRE"
	if err := checkTTL(op, key, ttl); err != nil {
		return f.fail(op, key, err)
	}
	doc, err := f.text.Marshal(value)
	if err != nil {
		return f.fail(op, key, err)
	}
	cmds, err := f.client.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.JSONSet(ctx, key.name, rootPath, string(doc))
		pipe.Expire(ctx, key.name, wholeSeconds(ttl))
		return nil
	})
	if err := txError(err, cmds); err != nil {
		return f.fail(op, key, classify(op, err))
	}
	return nil
}

// txError returns the transaction error, or the first queued command's error.
func txError(err error, cmds []goredis.Cmder) error {
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if cerr := cmd.Err(); cerr != nil {
			return cerr
		}
	}
	return nil
}
