package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tickchain/logx"
)

type chainPromMetrics struct {
	nodeUpUnixSeconds prometheus.Gauge
	tickCount         prometheus.Counter
	blocksProduced    prometheus.Counter
	blocksVerified    prometheus.Counter
	verifyDuration    prometheus.Histogram
	chainBreakCount   prometheus.Counter
	panicCount        prometheus.Counter
}

func newChainPromMetrics() *chainPromMetrics {
	return &chainPromMetrics{
		nodeUpUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tickchain_up_timestamp_unix_seconds",
				Help: "Unix timestamp of process start",
			},
		),
		tickCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tickchain_tick_count",
				Help: "The total number of ticks produced",
			},
		),
		blocksProduced: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tickchain_blocks_produced",
				Help: "The total number of blocks handed to the verifier",
			},
		),
		blocksVerified: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tickchain_blocks_verified",
				Help: "The total number of blocks verified",
			},
		),
		verifyDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "tickchain_verify_duration_seconds",
				Help: "Duration in second of one block verification including its boundary",
			},
		),
		chainBreakCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tickchain_chain_break_count",
				Help: "The total number of chain relation failures detected",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tickchain_panic_count",
				Help: "The total number of recovered panics",
			},
		),
	}
}

var chainMetrics *chainPromMetrics

// InitMetrics initializes the metric set but does not expose it yet.
func InitMetrics() {
	chainMetrics = newChainPromMetrics()
	chainMetrics.nodeUpUnixSeconds.SetToCurrentTime()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

// StartMetricsServer exposes /metrics on addr. It blocks serving requests;
// callers run it on its own goroutine.
func StartMetricsServer(addr string) {
	mux := http.NewServeMux()
	RegisterMetrics(mux)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logx.Error("MONITORING", "Metrics server stopped: ", err)
	}
}

func AddTickCount(n int) {
	if chainMetrics == nil {
		return
	}
	chainMetrics.tickCount.Add(float64(n))
}

func IncreaseBlocksProduced() {
	if chainMetrics == nil {
		return
	}
	chainMetrics.blocksProduced.Inc()
}

func IncreaseBlocksVerified() {
	if chainMetrics == nil {
		return
	}
	chainMetrics.blocksVerified.Inc()
}

func RecordVerifyDuration(duration time.Duration) {
	if chainMetrics == nil {
		return
	}
	chainMetrics.verifyDuration.Observe(duration.Seconds())
}

func IncreaseChainBreakCount() {
	if chainMetrics == nil {
		return
	}
	chainMetrics.chainBreakCount.Inc()
}

func IncreasePanicCount() {
	if chainMetrics == nil {
		return
	}
	chainMetrics.panicCount.Inc()
}
