package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

// Metrics holds all Prometheus metrics for the voice interpreter.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	unrecognized    prometheus.Counter
	aiFallbacks     *prometheus.CounterVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voice_request_duration_seconds",
				Help:    "Duration of voice command processing by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		commandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_commands_total",
				Help: "Total voice commands by recognized module and action.",
			},
			[]string{"module", "action"},
		),
		unrecognized: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "voice_unrecognized_total",
				Help: "Total voice commands with no recognized intent.",
			},
		),
		aiFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_ai_fallback_total",
				Help: "Total AI parser invocations by outcome.",
			},
			[]string{"outcome"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrCommand counts a dispatched command under its module and action.
func (m *Metrics) IncrCommand(module, action string) {
	m.commandsTotal.WithLabelValues(module, action).Inc()
}

// IncrUnrecognized counts a command the classifier could not place.
func (m *Metrics) IncrUnrecognized() {
	m.unrecognized.Inc()
}

// IncrAIFallback counts an AI parser invocation. Outcome is one of
// "success", "error", "disabled".
func (m *Metrics) IncrAIFallback(outcome string) {
	m.aiFallbacks.WithLabelValues(outcome).Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// GetVoiceSnapshot returns a snapshot of interpreter metrics suitable for
// the GET /v1/metrics/voice endpoint.
func (m *Metrics) GetVoiceSnapshot() *domain.VoiceMetrics {
	// Gather current values from Prometheus counters.
	// Note: Prometheus counters expose cumulative values.
	unrecognized := getCounterValue(m.unrecognized)
	aiSuccess := getCounterValue(m.aiFallbacks.WithLabelValues("success"))
	aiError := getCounterValue(m.aiFallbacks.WithLabelValues("error"))
	cacheHits := getCounterValue(m.cacheHits.WithLabelValues("places"))
	cacheMisses := getCounterValue(m.cacheMisses.WithLabelValues("places"))

	recognized := float64(0)
	byModule := map[string]int64{}
	for _, mod := range []string{"finances", "trips", "activities", "dates", "places"} {
		for _, act := range []string{"view", "create", "search"} {
			v := getCounterValue(m.commandsTotal.WithLabelValues(mod, act))
			recognized += v
			byModule[mod] += int64(v)
		}
	}

	total := recognized + unrecognized
	recognitionRate := float64(0)
	if total > 0 {
		recognitionRate = recognized / total
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.VoiceMetrics{
		TotalCommands:    int64(total),
		Unrecognized:     int64(unrecognized),
		RecognitionRate:  recognitionRate,
		CommandsByModule: byModule,
		AIFallbacks:      int64(aiSuccess + aiError),
		AIFallbackErrors: int64(aiError),
		CacheHitRate:     cacheHitRate,
		Period:           "all_time",
	}
}

// getCounterValue extracts the current float64 value from a Counter.
func getCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
