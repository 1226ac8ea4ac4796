package utils

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PrometheusRunsStarted     *prometheus.CounterVec
	PrometheusRunsFinished    *prometheus.CounterVec
	PrometheusRunsFailed      *prometheus.CounterVec
	PrometheusStepFailedRetry *prometheus.CounterVec

	PrometheusRowsWritten       *prometheus.GaugeVec
	PrometheusPartitionsWritten *prometheus.GaugeVec
	PrometheusLastRunDuration   *prometheus.GaugeVec
)

func StartPrometheus(port string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(":"+port, nil)
		if err != nil {
			logger.Error().Str("err", err.Error()).Msg("prometheus start error")
		}
	}()
	logger.Info().Str("port", port).Msg("Started prometheus")
}

func init() {
	var labelNames = []string{"date"}

	PrometheusRunsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runs_started",
	}, labelNames)

	PrometheusRunsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runs_finished",
	}, labelNames)

	PrometheusRunsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runs_failed",
	}, labelNames)

	PrometheusStepFailedRetry = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "step_failed_retry",
	}, []string{"date", "step"})

	PrometheusRowsWritten = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rows_written",
	}, labelNames)

	PrometheusPartitionsWritten = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "partitions_written",
	}, labelNames)

	PrometheusLastRunDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "last_run_duration",
	}, labelNames)
}
