package redis

import (
	"fmt"

	"github.com/kbukum/redisfacade/validation"
)

// Geo index bounds accepted by GEOADD. Latitudes beyond ±85.05112878 cannot
// be encoded by the Redis geohash.
const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -85.05112878
	MaxLatitude  = 85.05112878
)

// Coordinate is a point on the geo index, in degrees.
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NewCoordinate returns the coordinate at lon, lat.
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Longitude: lon, Latitude: lat}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g)", c.Longitude, c.Latitude)
}

// Validate checks both axes against the geo index bounds.
func (c Coordinate) Validate() error {
	return c.check(validation.New()).Err()
}

func (c Coordinate) check(v *validation.Validator) *validation.Validator {
	return v.
		Between("longitude", c.Longitude, MinLongitude, MaxLongitude).
		Between("latitude", c.Latitude, MinLatitude, MaxLatitude)
}
