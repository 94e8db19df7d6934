/*
Package metrics records per-run counters and writes them in the Prometheus
text format for node_exporter's textfile collector.
*/
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bultentakip"

// Stage labels for failures.
const (
	StageFetch    = "fetch"
	StageDownload = "download"
	StageUpload   = "upload"
	StageNotify   = "notify"
	StageSave     = "save"
)

type Recorder struct {
	registry *prometheus.Registry

	bulletinsSeen prometheus.Gauge
	bulletinsNew  prometheus.Gauge
	downloaded    prometheus.Counter
	uploaded      prometheus.Counter
	notified      prometheus.Counter
	failures      *prometheus.CounterVec
	expectedFound prometheus.Gauge
	lastSuccess   prometheus.Gauge
	runDuration   prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		bulletinsSeen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bulletins_seen",
			Help:      "Bulletins listed on the source page in the last run.",
		}),
		bulletinsNew: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bulletins_new",
			Help:      "Bulletins not present in the previous snapshot.",
		}),
		downloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulletins_downloaded_total",
			Help:      "Bulletins downloaded in this run.",
		}),
		uploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulletins_uploaded_total",
			Help:      "Bulletins uploaded to Dropbox in this run.",
		}),
		notified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Notification emails sent in this run.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failures in this run by pipeline stage.",
		}, []string{"stage"}),
		expectedFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expected_bulletin_published",
			Help:      "1 if the current month's bulletin was found during the early-month check, 0 otherwise.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run whose fetch succeeded.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
	}

	r.registry.MustRegister(
		r.bulletinsSeen,
		r.bulletinsNew,
		r.downloaded,
		r.uploaded,
		r.notified,
		r.failures,
		r.expectedFound,
		r.lastSuccess,
		r.runDuration,
	)

	for _, stage := range []string{StageFetch, StageDownload, StageUpload, StageNotify, StageSave} {
		r.failures.WithLabelValues(stage)
	}

	return r
}

func (r *Recorder) Seen(n int) { r.bulletinsSeen.Set(float64(n)) }

func (r *Recorder) New(n int) { r.bulletinsNew.Set(float64(n)) }

func (r *Recorder) Downloaded() { r.downloaded.Inc() }

func (r *Recorder) Uploaded() { r.uploaded.Inc() }

func (r *Recorder) Notified() { r.notified.Inc() }

func (r *Recorder) Failed(stage string) {
	r.failures.WithLabelValues(stage).Inc()
}

func (r *Recorder) ExpectedFound(found bool) {
	if found {
		r.expectedFound.Set(1)
		return
	}
	r.expectedFound.Set(0)
}

func (r *Recorder) Succeeded(at time.Time) {
	r.lastSuccess.Set(float64(at.Unix()))
}

func (r *Recorder) Duration(d time.Duration) {
	r.runDuration.Set(d.Seconds())
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
