package config

import (
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/store"
)

// Config is the top-level sidenav configuration, corresponding to sidenav.yaml.
type Config struct {
	Port            int                   `yaml:"port" koanf:"port"`
	LogLevel        string                `yaml:"log_level,omitempty" koanf:"log_level"`
	SiteName        string                `yaml:"site_name" koanf:"site_name"`
	MaxSessions     int                   `yaml:"max_sessions" koanf:"max_sessions"`
	AllowAllOrigins bool                  `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	TLSCertFile     string                `yaml:"tls_cert_file,omitempty" koanf:"tls_cert_file"`
	TLSKeyFile      string                `yaml:"tls_key_file,omitempty" koanf:"tls_key_file"`
	Store           StoreConfig           `yaml:"store" koanf:"store"`
	Categories      []menu.CustomCategory `yaml:"custom_categories,omitempty" koanf:"custom_categories"`
}

// StoreConfig selects the persistent store for collapse state.
type StoreConfig struct {
	Backend   store.Backend `yaml:"backend" koanf:"backend"`
	Path      string        `yaml:"path,omitempty" koanf:"path"`
	RedisAddr string        `yaml:"redis_addr,omitempty" koanf:"redis_addr"`
	RedisDB   int           `yaml:"redis_db,omitempty" koanf:"redis_db"`
}

// Options converts the configuration into store options.
func (s StoreConfig) Options() store.Options {
	return store.Options{
		Backend:   s.Backend,
		Path:      s.Path,
		RedisAddr: s.RedisAddr,
		RedisDB:   s.RedisDB,
	}
}
