package redis

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kbukum/redisfacade/validation"
)

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis server address (host:port).
	Addr string `yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`

	// Password is the Redis server password.
	Password string `yaml:"password" mapstructure:"password"`

	// SSL enables TLS. Config files and env vars accept "true", "TRUE" or "1".
	SSL bool `yaml:"ssl" mapstructure:"ssl"`

	// DB is the Redis database number.
	DB int `yaml:"db" mapstructure:"db" validate:"gte=0"`

	// PoolSize is the maximum number of socket connections.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size" validate:"gte=1"`

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int `yaml:"min_idle_conns" mapstructure:"min_idle_conns" validate:"gte=0"`

	// MaxRetries is the number of client-side retries. Zero defaults to -1,
	// which go-redis stores as 0 retries: every command is sent once.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=-1"`

	// DialTimeout is the timeout for establishing new connections (e.g. "5s").
	DialTimeout string `yaml:"dial_timeout" mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads (e.g. "3s").
	ReadTimeout string `yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes (e.g. "3s").
	WriteTimeout string `yaml:"write_timeout" mapstructure:"write_timeout"`

	// PoolTimeout is how long a command waits for a free connection (e.g. "4s").
	PoolTimeout string `yaml:"pool_timeout" mapstructure:"pool_timeout"`

	// ConnMaxIdleTime closes connections idle for longer (e.g. "5m").
	ConnMaxIdleTime string `yaml:"idle_timeout" mapstructure:"idle_timeout"`

	// ConnMaxLifetime bounds connection reuse (e.g. "30m"); empty means no limit.
	ConnMaxLifetime string `yaml:"max_conn_age" mapstructure:"max_conn_age"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns < 0 {
		c.MinIdleConns = 0
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = -1
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "3s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "3s"
	}
}

// Validate checks struct tags and that every duration parses.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	durations := []struct {
		name  string
		value string
	}{
		{"dial_timeout", c.DialTimeout},
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
		{"pool_timeout", c.PoolTimeout},
		{"idle_timeout", c.ConnMaxIdleTime},
		{"max_conn_age", c.ConnMaxLifetime},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.value, err)
		}
	}
	return nil
}

// Host returns the host part of Addr.
func (c *Config) Host() string {
	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return c.Addr
	}
	return host
}

// TLSConfig returns the client TLS settings, or nil when SSL is off.
func (c *Config) TLSConfig() *tls.Config {
	if !c.SSL {
		return nil
	}
	return &tls.Config{
		ServerName: c.Host(),
		MinVersion: tls.VersionTLS12,
	}
}

// ParseSSL coerces a raw ssl flag: only "true", in any case and without
// surrounding whitespace, enables TLS.
func ParseSSL(raw string) bool {
	return strings.EqualFold(raw, "true")
}

// duration parses a validated duration field; empty yields zero.
func duration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}
