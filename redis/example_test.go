package redis_test

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/redisfacade/errors"
	"github.com/kbukum/redisfacade/logger"
	"github.com/kbukum/redisfacade/redis"
	redistest "github.com/kbukum/redisfacade/redis/testutil"
)

func startServer(ctx context.Context) *redistest.Component {
	rc := redistest.NewComponent()
	if err := rc.Start(ctx); err != nil {
		panic(err)
	}
	return rc
}

func ExampleFacade_GeoSearch() {
	ctx := context.Background()
	rc := startServer(ctx)
	defer rc.Stop(ctx)

	f, err := redis.Open[string](rc.Config(), logger.Nop())
	if err != nil {
		panic(err)
	}
	defer f.Close()

	shops := redis.StringKey("shops")
	palermo := redis.NewCoordinate(13.361389, 38.115556)
	if _, err := f.GeoAdd(ctx, shops, palermo, map[string]string{"florist": "closed", "bakery": "open"}); err != nil {
		panic(err)
	}

	found, err := f.GeoSearch(ctx, shops, palermo, 1)
	if err != nil {
		panic(err)
	}
	for name, status := range found.All() {
		fmt.Println(name, status)
	}
	// Output:
	// bakery open
	// florist closed
}

func ExampleFacade_GetString() {
	ctx := context.Background()
	rc := startServer(ctx)
	defer rc.Stop(ctx)

	f, err := redis.Open[string](rc.Config(), logger.Nop())
	if err != nil {
		panic(err)
	}
	defer f.Close()

	status, _ := f.SetString(ctx, redis.StringKey("greeting"), "hello")
	fmt.Println(status)

	val, ok, _ := f.GetString(ctx, redis.StringKey("greeting"))
	fmt.Println(val, ok)

	_, ok, err = f.GetString(ctx, redis.NullKey)
	fmt.Println(ok, err)

	err = f.SetStringTTL(ctx, redis.StringKey("greeting"), "hi", 10*time.Millisecond)
	fmt.Println(errors.CodeOf(err))
	// Output:
	// OK
	// hello true
	// false <nil>
	// INVALID_INPUT
}
