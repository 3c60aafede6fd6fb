package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("service identity propagates", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Version: "2.1.0"}
		cfg.ApplyDefaults()
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service 'svc', got %q", cfg.Logging.ServiceName)
		}
		if cfg.Telemetry.ServiceName != "svc" || cfg.Telemetry.ServiceVersion != "2.1.0" {
			t.Errorf("unexpected telemetry identity: %+v", cfg.Telemetry)
		}
		if cfg.Redis.MaxRetries != -1 {
			t.Errorf("expected redis retries disabled by default, got %d", cfg.Redis.MaxRetries)
		}
	})

	t.Run("version defaults to build identity", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Version == "" || cfg.Telemetry.ServiceVersion != cfg.Version {
			t.Errorf("version = %q, telemetry version = %q", cfg.Version, cfg.Telemetry.ServiceVersion)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc"}
		cfg.Redis.Addr = "localhost:6379"
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
		{"missing redis addr", func(c *ServiceConfig) { c.Redis.Addr = "" }, "config.redis"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: cache-service
environment: staging
version: "1.0.0"
redis:
  addr: redis.internal:6380
  password: s3cret
  ssl: "TRUE"
`)

	var cfg ServiceConfig
	if err := LoadConfig("cache-service", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "cache-service" {
		t.Errorf("expected name 'cache-service', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Redis.Addr != "redis.internal:6380" || cfg.Redis.Password != "s3cret" {
		t.Errorf("unexpected redis section: %+v", cfg.Redis)
	}
	if !cfg.Redis.SSL {
		t.Error("expected ssl string \"TRUE\" to coerce to true")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "redis:\n  addr: from-file:6379\n")
	t.Setenv("REDIS_ADDR", "from-env:6379")
	t.Setenv("REDIS_SSL", "1")

	var cfg ServiceConfig
	if err := LoadConfig("svc", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Redis.Addr != "from-env:6379" {
		t.Errorf("expected env to win, got %q", cfg.Redis.Addr)
	}
	if !cfg.Redis.SSL {
		t.Error("expected REDIS_SSL=1 to coerce to true")
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "REDIS_PASSWORD=from-dotenv\n")
	t.Setenv("REDIS_PASSWORD", "")
	os.Unsetenv("REDIS_PASSWORD")

	var cfg ServiceConfig
	if err := LoadConfig("svc", &cfg, WithConfigFile(filepath.Join(dir, "missing.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Redis.Password != "from-dotenv" {
		t.Errorf("expected password from .env, got %q", cfg.Redis.Password)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	if err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "redis: [unterminated\n")

	var cfg ServiceConfig
	if err := LoadConfig("svc", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "redis:\n  addr: localhost:6379\n")

	cfg, err := Load("orders-cache", WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "orders-cache" {
		t.Errorf("expected service name fallback, got %q", cfg.Name)
	}
	if cfg.Logging.ServiceName != "orders-cache" {
		t.Errorf("expected logging service name, got %q", cfg.Logging.ServiceName)
	}

	bad := writeFile(t, dir, "bad.yml", "environment: moon\nredis:\n  addr: localhost:6379\n")
	if _, err := Load("orders-cache", WithConfigFile(bad)); err == nil {
		t.Fatal("expected validation error")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolveWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/cache/config.yml": true,
		"./.env":                 true,
	}}
	files := Resolve("acme-cache", LoaderConfig{FileSystem: fs})
	if files.ConfigFile != "./cmd/cache/config.yml" {
		t.Errorf("expected short-name config file, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected root .env, got %q", files.EnvFile)
	}

	explicit := Resolve("acme-cache", LoaderConfig{FileSystem: fs, ConfigFile: "/etc/cache.yml"})
	if explicit.ConfigFile != "/etc/cache.yml" {
		t.Errorf("expected explicit path to win, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("LOGGING_NO_COLOR")
	for _, want := range []string{"logging_no_color", "logging.no_color", "logging.no.color"} {
		if !slices.Contains(variants, want) {
			t.Errorf("expected variant %q in %v", want, variants)
		}
	}
	if got := envKeyVariants("HOME"); len(got) != 1 || got[0] != "home" {
		t.Errorf("expected single variant for HOME, got %v", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("options not applied: %+v", lc)
	}
}
