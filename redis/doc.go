// Package redis provides a typed facade over one go-redis connection:
// string and byte values, RedisJSON documents and geo sets.
//
// A Facade[T] owns its Client. T is the value type stored by the JSON,
// binary and geo operations; string operations ignore it.
//
// # Quick Start
//
//	f, err := redis.Open[Order](redis.Config{Addr: "localhost:6379"}, log)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	err = f.JSONSetTTL(ctx, redis.UUIDKey(order.ID), order, time.Hour)
//	order, err = f.JSONGet(ctx, redis.UUIDKey(order.ID))
//
// # Keys
//
// Keys are built with StringKey, BytesKey or UUIDKey. The zero Key is the
// null key: writes reject it with an INVALID_INPUT error before any command
// is sent, GetString reports it as missing and DeleteKeys skips it.
//
// # Errors
//
// Failures are *errors.AppError values. Use errors.HasCode to tell local
// validation (INVALID_INPUT), transport (CONNECTION_FAILED, TIMEOUT,
// COMMAND_FAILED, TRANSACTION_ABORTED) and codec (ENCODE_FAILED,
// DECODE_FAILED) failures apart.
//
// # Geo conventions
//
// GeoAdd stores a map[string]T per member and pairs with GeoSearch, which
// merges the maps. GeoAddTTL stores a single T per member and pairs with
// GeoSearchLimit. Mixing the two on one key yields DECODE_FAILED.
//
// # Lifecycle
//
// NewComponent wraps a facade for component.Registry, and Provide registers
// one in a di.Container. Commands are traced through the global OpenTelemetry
// provider unless WithTracer is given; WithMetrics records command metrics.
package redis
