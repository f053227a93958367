// Package metrics records extraction counters on a private Prometheus
// registry and writes them in the text exposition format for the
// node_exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status labels for extractions_total.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder holds the framegrab metrics.
type Recorder struct {
	registry *prometheus.Registry

	FramesSaved        prometheus.Counter
	FramesSkipped      prometheus.Counter
	Extractions        *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	LastTotalFrames    prometheus.Gauge
}

// New creates a Recorder on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		FramesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "framegrab_frames_saved_total",
			Help: "Total number of frames written to disk",
		}),
		FramesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "framegrab_frames_skipped_total",
			Help: "Total number of target frames that could not be read",
		}),
		Extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "framegrab_extractions_total",
			Help: "Total number of extractions, by mode and status",
		}, []string{"mode", "status"}),
		ExtractionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "framegrab_extraction_duration_seconds",
			Help:    "Duration of extractions",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"mode"}),
		LastTotalFrames: factory.NewGauge(prometheus.GaugeOpts{
			Name: "framegrab_source_frames",
			Help: "Frame count of the most recently processed video",
		}),
	}
}

// Observe records one finished extraction.
func (r *Recorder) Observe(mode string, saved, skipped, totalFrames int, elapsed time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}

	r.FramesSaved.Add(float64(saved))
	r.FramesSkipped.Add(float64(skipped))
	r.Extractions.WithLabelValues(mode, status).Inc()
	r.ExtractionDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if totalFrames > 0 {
		r.LastTotalFrames.Set(float64(totalFrames))
	}
}

// WriteTextfile writes all metrics to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
