package redis

import (
	"time"

	"github.com/kbukum/redisfacade/codec"
	"github.com/kbukum/redisfacade/errors"
	"github.com/kbukum/redisfacade/logger"
	"github.com/kbukum/redisfacade/validation"
)

// MinTTL is the shortest expiry the TTL operations accept. Expiries are sent
// in whole seconds.
const MinTTL = time.Second

// Facade is a typed view over one Client. T is the value type of the JSON,
// binary and geo operations. A Facade owns its client: Close closes it.
//
// A Facade holds no mutable state of its own and is safe for concurrent use.
type Facade[T any] struct {
	client *Client
	text   codec.Codec
	binary codec.Codec
	log    *logger.Logger
}

// Option customizes NewFacade.
type Option func(*facadeOptions)

type facadeOptions struct {
	text   codec.Codec
	binary codec.Codec
	log    *logger.Logger
}

// WithTextCodec replaces the JSON codec used for documents and geo members.
func WithTextCodec(c codec.Codec) Option {
	return func(o *facadeOptions) { o.text = c }
}

// WithBinaryCodec replaces the MessagePack codec used by SetBinary and GetBytes.
func WithBinaryCodec(c codec.Codec) Option {
	return func(o *facadeOptions) { o.binary = c }
}

// WithLogger sets the logger for operation diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *facadeOptions) { o.log = l }
}

// NewFacade wraps client. The facade takes ownership of it.
func NewFacade[T any](client *Client, opts ...Option) *Facade[T] {
	o := facadeOptions{text: codec.JSON(), binary: codec.MsgPack()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = client.log
	}
	return &Facade[T]{
		client: client,
		text:   o.text,
		binary: o.binary,
		log:    o.log.WithComponent("redis.facade"),
	}
}

// Open creates a client from cfg and wraps it in a new facade.
func Open[T any](cfg Config, log *logger.Logger, opts ...ClientOption) (*Facade[T], error) {
	client, err := New(cfg, log, opts...)
	if err != nil {
		return nil, err
	}
	return NewFacade[T](client, WithLogger(log)), nil
}

// Client returns the owned client.
func (f *Facade[T]) Client() *Client {
	return f.client
}

// Close closes the owned client. Safe to call multiple times.
func (f *Facade[T]) Close() error {
	return f.client.Close()
}

// requireKey rejects the null key for op.
func requireKey(op string, key Key) error {
	if key.IsNull() {
		return errors.NullKey(op)
	}
	return nil
}

// checkTTL rejects a null key first, then a ttl below MinTTL.
func checkTTL(op string, key Key, ttl time.Duration) error {
	if key.IsNull() {
		return errors.NullKey(op)
	}
	return validation.New().MinDuration("ttl", ttl, MinTTL).Err()
}

// wholeSeconds truncates ttl to the precision EXPIRE and SETEX accept.
func wholeSeconds(ttl time.Duration) time.Duration {
	return ttl.Truncate(time.Second)
}

// fail logs err at debug level and returns it.
func (f *Facade[T]) fail(op string, key Key, err error) error {
	f.log.Debug("redis operation failed", logger.Fields(
		logger.FieldOperation, op,
		logger.FieldKey, key.String(),
		logger.FieldErrorCode, string(errors.CodeOf(err)),
		logger.FieldError, err.Error(),
	))
	return err
}
