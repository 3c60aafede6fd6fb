// Package config loads service configuration from YAML files, .env files and
// the process environment using viper and godotenv.
//
// Files are searched in the usual places (./cmd/<service>/config.yml,
// ./config/config.yml, ./config.yml and the matching .env files). Environment
// variables override file values, with underscores mapped to nested keys:
//
//	REDIS_ADDR=cache:6379 REDIS_SSL=true ./svc
//
// Typical use:
//
//	cfg, err := config.Load("acme-cache")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	facade, err := redis.Open[Order](cfg.Redis, logger.New(&cfg.Logging, cfg.Name))
package config
