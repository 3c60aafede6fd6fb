// Package validation checks configuration structs and call arguments,
// reporting failures as INVALID_INPUT app errors.
//
// Struct tags are checked with go-playground/validator:
//
//	type Config struct {
//	    Addr string `mapstructure:"addr" validate:"required,hostname_port"`
//	}
//	err := validation.Validate(cfg)
//
// Call arguments are collected programmatically:
//
//	err := validation.New().
//	    Positive("radius_km", radius).
//	    PositiveInt("limit", limit).
//	    Err()
package validation
