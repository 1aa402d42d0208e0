package observability

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics is an in-process registry rendered in the Prometheus text format on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	llmRequests *CounterVec
	llmLatency  *HistogramVec
	llmTokens   *CounterVec

	generationAttempts *CounterVec
	generationOutcomes *CounterVec

	embedRequests *CounterVec
	events        *CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Current() *Metrics {
	return instance
}

// Init builds the process registry once; later calls return it. Disabled returns nil.
func Init(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("bs_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"bs_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight: NewGauge("bs_api_inflight_requests", "In-flight API requests."),
		llmRequests: NewCounterVec("bs_llm_requests_total", "Provider calls by provider/outcome.", []string{"provider", "outcome"}),
		llmLatency: NewHistogramVec(
			"bs_llm_request_duration_seconds",
			"Provider call latency in seconds by provider/outcome.",
			[]string{"provider", "outcome"},
			[]float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		),
		llmTokens:          NewCounterVec("bs_llm_tokens_total", "Provider tokens by provider/direction.", []string{"provider", "direction"}),
		generationAttempts: NewCounterVec("bs_generation_attempts_total", "Orchestrator attempts by mode/tier/provider/outcome.", []string{"mode", "tier", "provider", "outcome"}),
		generationOutcomes: NewCounterVec("bs_generation_total", "Orchestrator calls by mode/outcome.", []string{"mode", "outcome"}),
		embedRequests:      NewCounterVec("bs_embedding_requests_total", "Embedding calls by outcome.", []string{"outcome"}),
		events:             NewCounterVec("bs_domain_events_total", "Published domain events by type/outcome.", []string{"type", "outcome"}),
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) ObserveLLMRequest(provider, outcome string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	provider = orUnknown(provider)
	outcome = orUnknown(outcome)
	m.llmRequests.Inc(provider, outcome)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), provider, outcome)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), provider, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), provider, "output")
	}
}

func (m *Metrics) IncGenerationAttempt(mode string, tier int, provider, outcome string) {
	if m == nil {
		return
	}
	m.generationAttempts.Inc(orUnknown(mode), strconv.Itoa(tier), orUnknown(provider), orUnknown(outcome))
}

func (m *Metrics) IncGeneration(mode, outcome string) {
	if m == nil {
		return
	}
	m.generationOutcomes.Inc(orUnknown(mode), orUnknown(outcome))
}

func (m *Metrics) IncEmbedding(outcome string) {
	if m == nil {
		return
	}
	m.embedRequests.Inc(orUnknown(outcome))
}

func (m *Metrics) IncEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.events.Inc(orUnknown(eventType), orUnknown(outcome))
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []collector{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.generationAttempts, m.generationOutcomes,
		m.embedRequests, m.events,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
