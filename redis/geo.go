package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisfacade/validation"
)

// Radius unit for geo searches.
const geoUnitKm = "km"

// GeoAdd adds one member at coord whose name is the text encoding of values.
// It returns true only when the member is new; re-adding an existing member
// updates its position and returns false.
//
// Members written by GeoAdd are read back with GeoSearch.
func (f *Facade[T]) GeoAdd(ctx context.Context, key Key, coord Coordinate, values map[string]T) (bool, error) {
	const op = "GEOADD"
	if err := requireKey(op, key); err != nil {
		return false, f.fail(op, key, err)
	}
	if err := coord.Validate(); err != nil {
		return false, f.fail(op, key, err)
	}
	member, err := f.text.Marshal(values)
	if err != nil {
		return false, f.fail(op, key, err)
	}
	added, err := f.client.rdb.GeoAdd(ctx, key.name, geoLocation(coord, member)).Result()
	if err != nil {
		return false, f.fail(op, key, classify(op, err))
	}
	return added == 1, nil
}

// GeoAddTTL adds the text encoding of value at coord and sets the expiry of
// the whole set, in one MULTI/EXEC.
//
// Members written by GeoAddTTL are read back with GeoSearchLimit.
func (f *Facade[T]) GeoAddTTL(ctx context.Context, key Key, coord Coordinate, value T, ttl time.Duration) error {
	const op = "MULTI GEOADD EXPIRE"
	if err := checkTTL(op, key, ttl); err != nil {
		return f.fail(op, key, err)
	}
	if err := coord.Validate(); err != nil {
		return f.fail(op, key, err)
	}
	member, err := f.text.Marshal(value)
	if err != nil {
		return f.fail(op, key, err)
	}
	cmds, err := f.client.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.GeoAdd(ctx, key.name, geoLocation(coord, member))
		pipe.Expire(ctx, key.name, wholeSeconds(ttl))
		return nil
	})
	if err := txError(err, cmds); err != nil {
		return f.fail(op, key, classify(op, err))
	}
	return nil
}

// GeoSearch returns the members within radiusKm of coord, each decoded as a
// map and merged in reply order. When two members share a map key the later
// one wins.
func (f *Facade[T]) GeoSearch(ctx context.Context, key Key, coord Coordinate, radiusKm float64) (*SortedMap[T], error) {
	const op = "GEORADIUS_RO"
	members, err := f.geoRadius(ctx, op, key, coord, radiusKm, 0)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]T)
	for _, m := range members {
		var entry map[string]T
		if err := f.text.Unmarshal([]byte(m.Name), &entry); err != nil {
			return nil, f.fail(op, key, err)
		}
		for k, v := range entry {
			merged[k] = v
		}
	}
	return newSortedMap(merged), nil
}

// GeoSearchLimit returns at most limit members within radiusKm of coord, each
// decoded as a single value.
func (f *Facade[T]) GeoSearchLimit(ctx context.Context, key Key, coord Coordinate, radiusKm float64, limit int) ([]T, error) {
	const op = "GEORADIUS_RO"
	if err := validation.New().PositiveInt("limit", limit).Err(); err != nil {
		return nil, f.fail(op, key, err)
	}
	members, err := f.geoRadius(ctx, op, key, coord, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(members))
	for _, m := range members {
		var v T
		if err := f.text.Unmarshal([]byte(m.Name), &v); err != nil {
			return nil, f.fail(op, key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *Facade[T]) geoRadius(ctx context.Context, op string, key Key, coord Coordinate, radiusKm float64, count int) ([]goredis.GeoLocation, error) {
	if err := requireKey(op, key); err != nil {
		return nil, f.fail(op, key, err)
	}
	v := coord.check(validation.New()).Positive("radius", radiusKm)
	if err := v.Err(); err != nil {
		return nil, f.fail(op, key, err)
	}
	members, err := f.client.rdb.GeoRadius(ctx, key.name, coord.Longitude, coord.Latitude, &goredis.GeoRadiusQuery{
		Radius: radiusKm,
		Unit:   geoUnitKm,
		Count:  count,
	}).Result()
	if err != nil {
		return nil, f.fail(op, key, classify(op, err))
	}
	return members, nil
}

func geoLocation(coord Coordinate, member []byte) *goredis.GeoLocation {
	return &goredis.GeoLocation{
		Name:      string(member),
		Longitude: coord.Longitude,
		Latitude:  coord.Latitude,
	}
}
