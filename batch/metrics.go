package batch

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/mam/errs"
)

// Outcome labels for the files counter.
const (
	ResultDecoded = "decoded"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// Metrics holds Prometheus metrics for a batch run.
type Metrics struct {
	filesTotal     *prometheus.CounterVec
	failuresTotal  *prometheus.CounterVec
	warningsTotal  prometheus.Counter
	bytesInTotal   prometheus.Counter
	bytesOutTotal  prometheus.Counter
	decodeDuration *prometheus.HistogramVec
	inFlight       prometheus.Gauge

	registered bool
	mu         sync.Mutex
}

// NewMetrics creates the metrics under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Number of files processed, by result",
		}, []string{"result"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Number of failed files, by error kind",
		}, []string{"kind"}),
		warningsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "size_mismatch_total",
			Help:      "Number of files decoded to a size other than the declared one",
		}),
		bytesInTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Container bytes read",
		}),
		bytesOutTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recovered_bytes_total",
			Help:      "Payload bytes recovered",
		}),
		decodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Time spent decoding one container, by algorithm",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"algorithm"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "in_flight",
			Help:      "Files currently being processed",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.filesTotal,
		m.failuresTotal,
		m.warningsTotal,
		m.bytesInTotal,
		m.bytesOutTotal,
		m.decodeDuration,
		m.inFlight,
	}
}

// Register registers the metrics with registerer, or the default registerer when nil.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	collectors := m.collectors()
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			for _, r := range collectors {
				registerer.Unregister(r)
			}

			return err
		}
	}

	m.registered = true

	return nil
}

// WriteTextfile registers the metrics with a fresh registry and writes it to path in
// the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	reg := prometheus.NewRegistry()
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return prometheus.WriteToTextfile(path, reg)
}

func (m *Metrics) RecordDecoded(algorithm string, in, out int, took time.Duration) {
	m.filesTotal.WithLabelValues(ResultDecoded).Inc()
	m.bytesInTotal.Add(float64(in))
	m.bytesOutTotal.Add(float64(out))
	m.decodeDuration.WithLabelValues(algorithm).Observe(took.Seconds())
}

func (m *Metrics) RecordSkipped() {
	m.filesTotal.WithLabelValues(ResultSkipped).Inc()
}

func (m *Metrics) RecordFailed(kind errs.Kind) {
	m.filesTotal.WithLabelValues(ResultFailed).Inc()
	m.failuresTotal.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) RecordSizeMismatch() {
	m.warningsTotal.Inc()
}

func (m *Metrics) Begin() {
	m.inFlight.Inc()
}

func (m *Metrics) End() {
	m.inFlight.Dec()
}
