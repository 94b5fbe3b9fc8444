package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fininclusion/internal/artifact"
)

var (
	artifactInfoDesc = prometheus.NewDesc(
		"fininclusion_artifact_info",
		"Loaded artifacts by name and version",
		[]string{"artifact", "version"},
		nil,
	)
	encoderClassesDesc = prometheus.NewDesc(
		"fininclusion_encoder_classes",
		"Number of fitted classes per categorical encoder",
		[]string{"feature"},
		nil,
	)
)

// ArtifactCollector is a custom Prometheus collector that reports the loaded
// artifacts on each scrape.
type ArtifactCollector struct {
	arts *artifact.Artifacts
}

// NewArtifactCollector creates a collector over the loaded artifacts.
func NewArtifactCollector(arts *artifact.Artifacts) *ArtifactCollector {
	return &ArtifactCollector{arts: arts}
}

// Describe sends the metric descriptors to the channel.
func (c *ArtifactCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- artifactInfoDesc
	ch <- encoderClassesDesc
}

// Collect emits one info gauge per artifact and the vocabulary sizes.
func (c *ArtifactCollector) Collect(ch chan<- prometheus.Metric) {
	for name, version := range c.arts.Versions {
		ch <- prometheus.MustNewConstMetric(artifactInfoDesc, prometheus.GaugeValue, 1, name, version)
	}
	for _, feature := range c.arts.Bank.Features() {
		enc, _ := c.arts.Bank.Encoder(feature)
		ch <- prometheus.MustNewConstMetric(encoderClassesDesc, prometheus.GaugeValue, float64(enc.Len()), feature)
	}
}

// Recorder records prediction outcomes.
type Recorder struct {
	predictions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewRecorder creates a recorder and registers its metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fininclusion_predictions_total",
			Help: "Completed predictions by predicted label",
		}, []string{"label"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fininclusion_prediction_errors_total",
			Help: "Failed predictions by error kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fininclusion_prediction_duration_seconds",
			Help:    "Time spent assembling and scoring one prediction",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	reg.MustRegister(r.predictions, r.errors, r.duration)
	return r
}

// ObservePrediction records a successful prediction.
func (r *Recorder) ObservePrediction(label int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(strconv.Itoa(label)).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ObserveError records a failed prediction.
func (r *Recorder) ObserveError(kind string) {
	if r == nil {
		return
	}
	r.errors.WithLabelValues(kind).Inc()
}
