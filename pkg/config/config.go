package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/store"
)

// EnvPrefix prefixes every environment override, e.g. SIDENAV_STORE_BACKEND.
const EnvPrefix = "SIDENAV_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SIDENAV_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// SIDENAV_PORT -> port, SIDENAV_STORE_REDIS_ADDR -> store.redis_addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "store_"); ok {
		return "store." + rest
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validBackends = map[store.Backend]bool{
	store.BackendMemory: true,
	store.BackendFile:   true,
	store.BackendSQLite: true,
	store.BackendRedis:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must be non-negative")
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("tls_cert_file and tls_key_file must be set together")
	}

	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend %q: must be one of memory, file, sqlite, redis", c.Store.Backend)
	}

	switch c.Store.Backend {
	case store.BackendFile, store.BackendSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s backend", c.Store.Backend)
		}
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis backend")
		}
	}

	return nil
}

// CustomCategories implements menu.CategorySource.
func (c *Config) CustomCategories() []menu.CustomCategory {
	if c == nil {
		return nil
	}
	return c.Categories
}
