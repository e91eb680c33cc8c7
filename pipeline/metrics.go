package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/flizzeri/schemaforge/primitive"
)

// Metrics exposes Prometheus counters for an [Extract] run. It is
// entirely optional: the core package never registers a collector or
// starts a server on its own, so embedding [Extract] as a library never
// pulls in a metrics endpoint unless the caller opts in via
// [WithMetrics].
type Metrics struct {
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	CacheWrites         prometheus.Counter
	DiagnosticsTotal    *prometheus.CounterVec
	SymbolsProcessed    prometheus.Counter
}

// NewMetrics builds a [Metrics] registered against reg under the
// "schemaforge_" namespace.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaforge_cache_hits_total",
			Help: "Cache reads that resolved to a valid envelope.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaforge_cache_misses_total",
			Help: "Cache reads that found no entry or a corrupted one.",
		}),
		CacheWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaforge_cache_writes_total",
			Help: "Envelopes written to the disk cache.",
		}),
		DiagnosticsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schemaforge_diagnostics_total",
			Help: "Diagnostics produced while processing entity-tagged symbols, by category.",
		}, []string{"category"}),
		SymbolsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaforge_symbols_processed_total",
			Help: "Entity-tagged symbols processed across all runs.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.CacheHits, m.CacheMisses, m.CacheWrites, m.DiagnosticsTotal, m.SymbolsProcessed)
	}

	return m
}

// observeDiagnostics increments DiagnosticsTotal once per diagnostic,
// labeled by category. No-op when m is nil, so callers never need a
// conditional around every call site.
func (m *Metrics) observeDiagnostics(diags []primitive.Diagnostic) {
	if m == nil {
		return
	}

	for _, d := range diags {
		m.DiagnosticsTotal.WithLabelValues(string(d.Category)).Inc()
	}
}
