package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters for bookings, chat turns and the content cache.
type SiteMetrics struct {
	bookingOutcomes *prometheus.CounterVec
	chatIntents     *prometheus.CounterVec
	snapshotFetches *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		bookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_site",
			Subsystem: "booking",
			Name:      "outcomes_total",
			Help:      "Booking submissions by outcome kind",
		}, []string{"outcome"}),
		chatIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_site",
			Subsystem: "chat",
			Name:      "intents_total",
			Help:      "Chat turns by matched intent",
		}, []string{"intent"}),
		snapshotFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_site",
			Subsystem: "content",
			Name:      "snapshot_lookups_total",
			Help:      "Content snapshot lookups by source",
		}, []string{"source"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic_site",
			Subsystem: "backend",
			Name:      "request_seconds",
			Help:      "Latency of booking backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingOutcomes, m.chatIntents, m.snapshotFetches, m.backendLatency)
	return m
}

func (m *SiteMetrics) ObserveBookingOutcome(outcome string) {
	if m == nil {
		return
	}
	m.bookingOutcomes.WithLabelValues(outcome).Inc()
}

func (m *SiteMetrics) ObserveChatIntent(intent string) {
	if m == nil {
		return
	}
	if intent == "" {
		intent = "none"
	}
	m.chatIntents.WithLabelValues(intent).Inc()
}

// ObserveSnapshot records where a snapshot came from: memory, redis, backend or stale.
func (m *SiteMetrics) ObserveSnapshot(source string) {
	if m == nil {
		return
	}
	m.snapshotFetches.WithLabelValues(source).Inc()
}

func (m *SiteMetrics) ObserveBackendLatency(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.backendLatency.WithLabelValues(endpoint, status).Observe(seconds)
}
