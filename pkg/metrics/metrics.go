package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa los colectores Prometheus del painel.
// Un *Metrics nil es válido: todas las operaciones se vuelven no-op.
type Metrics struct {
	upstreamDuration *prometheus.HistogramVec
	creations        *prometheus.CounterVec
	toggles          *prometheus.CounterVec
}

// New registra los colectores en el registerer indicado.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of calls to the partnerships backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})
	creations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partnership_creations_total",
		Help: "Partnership creation attempts by outcome.",
	}, []string{"outcome"})
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partnership_status_toggles_total",
		Help: "Partnership status toggles by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(upstreamDuration, creations, toggles)
	return &Metrics{
		upstreamDuration: upstreamDuration,
		creations:        creations,
		toggles:          toggles,
	}
}

// ObserveUpstream registra la duración de una llamada al backend.
func (m *Metrics) ObserveUpstream(operation, outcome string, d time.Duration) {
	if m == nil || m.upstreamDuration == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Observe(d.Seconds())
}

// IncCreation cuenta un intento de creación; outcome es "created" o el tipo de error.
func (m *Metrics) IncCreation(outcome string) {
	if m == nil || m.creations == nil {
		return
	}
	m.creations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncToggle cuenta un toggle: "changed", "noop", "busy" o "failed".
func (m *Metrics) IncToggle(outcome string) {
	if m == nil || m.toggles == nil {
		return
	}
	m.toggles.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "unknown"
	}
	return v
}
