package config

import (
	"github.com/mchmarny/sidenav/pkg/collapse"
	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/store"
)

// DefaultConfig returns a Config populated with sensible defaults.
// LogLevel is left empty so the LOG_LEVEL environment variable applies
// unless the file or SIDENAV_LOG_LEVEL sets one.
func DefaultConfig() *Config {
	return &Config{
		Port:        server.DefaultPort,
		SiteName:    "MoonTV",
		MaxSessions: collapse.DefaultMaxSessions,
		Store: StoreConfig{
			Backend: store.BackendMemory,
		},
	}
}
