package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/world"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxel_viewer"

// Exporter owns the viewer's Prometheus collectors on a private registry.
type Exporter struct {
	registry *prometheus.Registry

	visible  prometheus.Gauge
	total    prometheus.Gauge
	capacity prometheus.Gauge
	edits    prometheus.Counter
	rebuilds prometheus.Counter
	desyncs  prometheus.Counter

	frameSeconds prometheus.Histogram
	fps          prometheus.Gauge
	drawn        prometheus.Gauge
	uploads      prometheus.Counter

	// last world counters seen, for turning totals into counter increments
	last world.Stats
}

func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "world",
			Name: "visible_blocks",
			Help: "Blocks in the visible-instance cache.",
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "world",
			Name: "total_blocks",
			Help: "Solid cells in the world grid.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "world",
			Name: "cache_capacity_blocks",
			Help: "Allocated entries of the visible-instance cache.",
		}),
		edits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "world",
			Name: "edits_total",
			Help: "Block placements and removals that changed the grid.",
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "world",
			Name: "cache_rebuilds_total",
			Help: "Full scans of the grid into the visible-instance cache.",
		}),
		desyncs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "world",
			Name: "cache_desyncs_total",
			Help: "Cache resets after a removal could not find its block.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "render",
			Name:    "frame_seconds",
			Help:    "Wall time of one frame.",
			Buckets: []float64{0.004, 0.008, 0.0167, 0.033, 0.05, 0.1, 0.25},
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "render",
			Name: "fps",
			Help: "Frames rendered during the last second.",
		}),
		drawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "render",
			Name: "instances_drawn",
			Help: "Instances submitted by the last colour pass.",
		}),
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "render",
			Name: "instance_uploads_total",
			Help: "Instance buffer uploads to the GPU.",
		}),
	}

	e.registry.MustRegister(
		e.visible, e.total, e.capacity, e.edits, e.rebuilds, e.desyncs,
		e.frameSeconds, e.fps, e.drawn, e.uploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return e
}

func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

// ObserveWorld updates the world gauges and advances the counters by the
// change since the previous call.
func (e *Exporter) ObserveWorld(s world.Stats) {
	e.visible.Set(float64(s.Visible))
	e.total.Set(float64(s.Total))
	e.capacity.Set(float64(s.Capacity))

	if d := s.Edits - e.last.Edits; d > 0 {
		e.edits.Add(float64(d))
	}
	if d := s.Rebuilds - e.last.Rebuilds; d > 0 {
		e.rebuilds.Add(float64(d))
	}
	if d := s.Desyncs - e.last.Desyncs; d > 0 {
		e.desyncs.Add(float64(d))
	}
	e.last = s
}

func (e *Exporter) ObserveFrame(d time.Duration) {
	e.frameSeconds.Observe(d.Seconds())
}

func (e *Exporter) SetFPS(fps int) { e.fps.Set(float64(fps)) }

// ObserveDraw records one colour pass submitting count instances.
func (e *Exporter) ObserveDraw(count int, uploaded bool) {
	e.drawn.Set(float64(count))
	if uploaded {
		e.uploads.Inc()
	}
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Server serves /metrics in the background.
type Server struct {
	srv *http.Server
}

// Serve starts the metrics endpoint on addr. Listen errors after startup are
// logged.
func (e *Exporter) Serve(addr string, log logging.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	s := &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}

	go func() {
		log.Infof("metrics available at http://%s/metrics", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %v", err)
		}
	}()
	return s
}

func (s *Server) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
