package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
database:
  dsn: ":memory:"
cache:
  backend: redis
  redis:
    addr: localhost:6379
    prefix: "vambrace:"
views:
  headline: "Welcome"
  static_context: '{"site": "vambrace"}'
  cache_timeout: "10m"
telemetry:
  metrics:
    enabled: true
pages:
  - slug: about
    title: About
    body: About us.
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Database.DSN != ":memory:" {
		t.Errorf("DSN = %q, want :memory:", cfg.Database.DSN)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Prefix != "vambrace:" {
		t.Errorf("Prefix = %q", cfg.Cache.Redis.Prefix)
	}
	if cfg.Views.Headline != "Welcome" {
		t.Errorf("Headline = %q", cfg.Views.Headline)
	}
	secs, err := cfg.Views.CacheTimeout.Seconds()
	if err != nil {
		t.Fatal(err)
	}
	if secs != 600 {
		t.Errorf("CacheTimeout = %d seconds, want 600", secs)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
	if len(cfg.Pages) != 1 || cfg.Pages[0].Slug != "about" {
		t.Errorf("Pages = %+v", cfg.Pages)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "database:\n  dsn: test.db\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("default ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("default Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.MaxSize != 10_000 {
		t.Errorf("default MaxSize = %d", cfg.Cache.MaxSize)
	}
	secs, err := cfg.Views.CacheTimeout.Seconds()
	if err != nil {
		t.Fatal(err)
	}
	if secs != 600 {
		t.Errorf("default CacheTimeout = %d seconds, want 600", secs)
	}
}

func TestLoad_IntegerCacheTimeout(t *testing.T) {
	path := writeConfig(t, "views:\n  cache_timeout: 300\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	secs, err := cfg.Views.CacheTimeout.Seconds()
	if err != nil {
		t.Fatal(err)
	}
	if secs != 300 {
		t.Errorf("CacheTimeout = %d seconds, want 300", secs)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("VAMBRACE_TEST_ADDR", "redis.internal:6379")

	got := expandEnv([]byte("addr: ${VAMBRACE_TEST_ADDR}\npass: ${VAMBRACE_TEST_UNSET}"))
	want := "addr: redis.internal:6379\npass: ${VAMBRACE_TEST_UNSET}"
	if string(got) != want {
		t.Errorf("expandEnv = %q, want %q", got, want)
	}
}
