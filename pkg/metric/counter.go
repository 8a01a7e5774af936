package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sidenav"

// IncrementalCounter counts events partitioned by label values.
type IncrementalCounter interface {
	Increment(val ...string)
}

type counter struct {
	vec *prometheus.CounterVec
}

func (c *counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounterWithRegistry registers a counter named sidenav_<name> on reg.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(vec)

	return &counter{vec: vec}
}

// Discard is a counter that records nothing.
var Discard IncrementalCounter = discard{}

type discard struct{}

func (discard) Increment(...string) {}

// GetHandlerForRegistry serves the metrics gathered by reg.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
