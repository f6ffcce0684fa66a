package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baseclean/baseclean/internal/blacklist"
	"github.com/baseclean/baseclean/internal/burnflow"
)

// Metrics collects burn and blacklist-cache counters.
type Metrics struct {
	BurnsAttempted prometheus.Counter
	BurnsSucceeded prometheus.Counter
	BurnsFailed    prometheus.Counter
	BurnsRejected  prometheus.Counter

	BlacklistSize       prometheus.Gauge
	BlacklistAgeSeconds prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BurnsAttempted: factory.NewCounter(prometheus.CounterOpts{
			Name: "baseclean_burns_attempted_total",
			Help: "Burn items attempted across all sessions.",
		}),
		BurnsSucceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "baseclean_burns_succeeded_total",
			Help: "Burn items confirmed on-chain.",
		}),
		BurnsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "baseclean_burns_failed_total",
			Help: "Burn items that failed, including user rejections.",
		}),
		BurnsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "baseclean_burns_rejected_total",
			Help: "Burn items declined at the signer.",
		}),
		BlacklistSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "baseclean_blacklist_size",
			Help: "Addresses in the community blacklist cache.",
		}),
		BlacklistAgeSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "baseclean_blacklist_age_seconds",
			Help: "Age of the cached community blacklist.",
		}),
	}
}

// ObserveBatch records a completed burn batch.
func (m *Metrics) ObserveBatch(sum burnflow.Summary) {
	m.BurnsAttempted.Add(float64(sum.Total))
	m.BurnsSucceeded.Add(float64(sum.Succeeded))
	m.BurnsFailed.Add(float64(sum.Failed))
	m.BurnsRejected.Add(float64(sum.Rejected))
}

// ObserveBlacklist records cache freshness.
func (m *Metrics) ObserveBlacklist(s blacklist.Stats) {
	m.BlacklistSize.Set(float64(s.Size))
	m.BlacklistAgeSeconds.Set(s.CacheAge.Seconds())
}

// Handler exposes the registry for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve mounts the scrape handler on addr for the process lifetime. Listener
// failures are logged, not fatal: a busy port must not block a burn.
func Serve(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics listener stopped", "addr", addr, "error", err)
		}
	}()
}
