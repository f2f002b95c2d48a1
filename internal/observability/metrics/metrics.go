package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters for the conversational intake flow.
type ChatMetrics struct {
	turnsTotal         *prometheus.CounterVec
	bookingsSubmitted  *prometheus.CounterVec
	extractionFailures prometheus.Counter
	knowledgeHits      prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total chat turns handled, by routed intent",
		}, []string{"intent"}),
		bookingsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "booking",
			Name:      "submitted_total",
			Help:      "Total reservation submissions, by source and status",
		}, []string{"source", "status"}),
		extractionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "chat",
			Name:      "extraction_failures_total",
			Help:      "Total language-model extraction failures (salvage-only fallback used)",
		}),
		knowledgeHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "chat",
			Name:      "knowledge_hits_total",
			Help:      "Total chat turns answered from the knowledge store",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsSubmitted, m.extractionFailures, m.knowledgeHits)
	return m
}

func (m *ChatMetrics) ObserveTurn(intent string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(intent).Inc()
}

func (m *ChatMetrics) ObserveSubmission(source, status string) {
	if m == nil {
		return
	}
	m.bookingsSubmitted.WithLabelValues(source, status).Inc()
}

func (m *ChatMetrics) ObserveExtractionFailure() {
	if m == nil {
		return
	}
	m.extractionFailures.Inc()
}

func (m *ChatMetrics) ObserveKnowledgeHit() {
	if m == nil {
		return
	}
	m.knowledgeHits.Inc()
}
