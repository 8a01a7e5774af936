package metric

import "github.com/prometheus/client_golang/prometheus"

// Nav groups the counters recorded by the navigation panel.
type Nav struct {
	// Toggles counts collapse toggles by resulting state ("collapsed", "expanded").
	Toggles IncrementalCounter

	// StoreFailures counts persistent store errors by operation ("read", "write", "parse").
	StoreFailures IncrementalCounter

	// Resolutions counts rendered active entries by entry ID ("none" when nothing matched).
	Resolutions IncrementalCounter
}

// NewNav registers the navigation counters on reg.
func NewNav(reg prometheus.Registerer) *Nav {
	return &Nav{
		Toggles: NewCounterWithRegistry(reg, "toggles_total",
			"Number of collapse toggles by resulting state.", "state"),
		StoreFailures: NewCounterWithRegistry(reg, "store_failures_total",
			"Number of persistent store failures recovered locally.", "op"),
		Resolutions: NewCounterWithRegistry(reg, "active_resolutions_total",
			"Number of active entry resolutions by entry.", "entry"),
	}
}

// NopNav returns counters that record nothing.
func NopNav() *Nav {
	return &Nav{Toggles: Discard, StoreFailures: Discard, Resolutions: Discard}
}
