package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/redisfacade/logger"
	"github.com/kbukum/redisfacade/observability"
	"github.com/kbukum/redisfacade/redis"
	"github.com/kbukum/redisfacade/version"
)

// ServiceConfig is the configuration of a process hosting redis facades.
// Projects extend it by embedding:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    CacheTTL string       `yaml:"cache_ttl" mapstructure:"cache_ttl"`
//	}
type ServiceConfig struct {
	Name        string               `yaml:"name" mapstructure:"name"`
	Environment string               `yaml:"environment" mapstructure:"environment"`
	Version     string               `yaml:"version" mapstructure:"version"`
	Debug       bool                 `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config        `yaml:"logging" mapstructure:"logging"`
	Redis       redis.Config         `yaml:"redis" mapstructure:"redis"`
	Telemetry   observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// GetServiceConfig returns the base config; promoted through embedding.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills zero-valued fields, propagating the service identity
// into logging and telemetry.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Redis.ApplyDefaults()
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section and prefixes errors with the section name.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("config.redis: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

// Load reads a ServiceConfig for serviceName, applies defaults and validates it.
func Load(serviceName string, opts ...LoaderOption) (*ServiceConfig, error) {
	cfg := &ServiceConfig{Name: serviceName}
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
