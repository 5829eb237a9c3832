package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/gin-gonic/contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scusemua/chained-hashmap/common/utils"
)

const (
	namespace = "chained_hashmap"
)

var (
	ErrPrometheusManagerAlreadyRunning = errors.New("PrometheusManager is already running")
	ErrPrometheusManagerNotRunning     = errors.New("PrometheusManager is not running")
)

// PrometheusManager records the activity of a single map and serves it to Prometheus over HTTP.
//
// PrometheusManager implements hashmap.Observer, so it can be attached to any hashmap.Observable store.
// Metrics are registered with a registry owned by the manager rather than the global default registry,
// which allows several managers to coexist in one process.
type PrometheusManager struct {
	log logger.Logger

	registry          *prometheus.Registry
	prometheusHandler http.Handler
	engine            *gin.Engine
	httpServer        *http.Server

	// OperationsCounterVec counts mutating map operations, labelled by "operation"
	// (insert, update, remove, clear or expand).
	OperationsCounterVec *prometheus.CounterVec

	// EntriesGauge is the number of entries held by the map.
	EntriesGauge prometheus.Gauge

	// BucketsGauge is the number of buckets in the map's bucket array.
	BucketsGauge prometheus.Gauge

	// LoadGauge is EntriesGauge divided by BucketsGauge.
	LoadGauge prometheus.Gauge

	// ExpandLatencyMicrosecondsHistogram is the time taken to rehash every entry into a larger bucket array.
	ExpandLatencyMicrosecondsHistogram prometheus.Histogram

	backend string
	port    int
	mu      sync.Mutex

	// serving indicates whether the manager has been started and is serving requests.
	serving bool
}

// NewPrometheusManager creates a PrometheusManager whose metrics carry the given backend name as a label.
//
// Metrics are served on the given port once Start is called. A port <= 0 records metrics without serving them.
func NewPrometheusManager(port int, backend string) (*PrometheusManager, error) {
	m := &PrometheusManager{
		registry: prometheus.NewRegistry(),
		backend:  backend,
		port:     port,
	}
	config.InitLogger(&m.log, m)

	if err := m.initializeMetrics(); err != nil {
		return nil, err
	}

	m.prometheusHandler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	m.initializeEngine()

	return m, nil
}

func (m *PrometheusManager) initializeMetrics() error {
	constLabels := prometheus.Labels{"backend": m.backend}

	m.OperationsCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "operations_total",
		Help:        "The number of mutating operations applied to the map",
		ConstLabels: constLabels,
	}, []string{"operation"})
	m.EntriesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "entries",
		Help:        "Number of entries currently stored in the map",
		ConstLabels: constLabels,
	})
	m.BucketsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "buckets",
		Help:        "Number of buckets in the map's bucket array",
		ConstLabels: constLabels,
	})
	m.LoadGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "load",
		Help:        "Entries per bucket",
		ConstLabels: constLabels,
	})
	m.ExpandLatencyMicrosecondsHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   namespace,
		Name:        "expand_latency_microseconds",
		Help:        "The latency, in microseconds, of growing the bucket array and rehashing every entry.",
		Buckets:     []float64{1, 10, 100, 1000, 10e3, 100e3, 1e6, 10e6},
		ConstLabels: constLabels,
	})

	if err := m.registry.Register(m.OperationsCounterVec); err != nil {
		m.log.Error("Failed to register 'Operations' metric because: %v", err)
		return err
	}

	if err := m.registry.Register(m.EntriesGauge); err != nil {
		m.log.Error("Failed to register 'Entries' metric because: %v", err)
		return err
	}

	if err := m.registry.Register(m.BucketsGauge); err != nil {
		m.log.Error("Failed to register 'Buckets' metric because: %v", err)
		return err
	}

	if err := m.registry.Register(m.LoadGauge); err != nil {
		m.log.Error("Failed to register 'Load' metric because: %v", err)
		return err
	}

	if err := m.registry.Register(m.ExpandLatencyMicrosecondsHistogram); err != nil {
		m.log.Error("Failed to register 'Expand Latency' metric because: %v", err)
		return err
	}

	return nil
}

func (m *PrometheusManager) initializeEngine() {
	m.engine = gin.New()
	m.engine.Use(gin.Recovery())
	m.engine.Use(cors.Default())

	m.engine.GET("/metrics", m.HandleRequest)
}

// Handler returns the HTTP handler that serves the /metrics endpoint.
func (m *PrometheusManager) Handler() http.Handler {
	return m.engine
}

// HandleRequest handles Prometheus HTTP requests (when Prometheus is scraping for metrics).
func (m *PrometheusManager) HandleRequest(c *gin.Context) {
	m.prometheusHandler.ServeHTTP(c.Writer, c.Request)
}

// IsRunning returns true if the PrometheusManager has been started.
func (m *PrometheusManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.serving
}

// Start begins serving the metrics via an HTTP endpoint.
func (m *PrometheusManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.serving {
		m.log.Warn("PrometheusManager for the %s map is already running.", m.backend)
		return ErrPrometheusManagerAlreadyRunning
	}

	if m.port <= 0 {
		m.log.Debug("Prometheus Port is set to %d. Not serving HTTP server.", m.port)
		m.serving = true
		return nil
	}

	address := fmt.Sprintf("0.0.0.0:%d", m.port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		m.log.Error(utils.RedStyle.Render("HTTP Server failed to listen on '%s'. Error: %v"), address, err)
		return errors.Wrapf(err, "failed to listen on %s", address)
	}

	server := &http.Server{
		Addr:    address,
		Handler: m.engine,
	}
	m.httpServer = server
	m.serving = true

	go func() {
		m.log.Debug("Serving Prometheus metrics at %s", address)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error("HTTP Server at '%s' stopped serving: %v", address, err)
		}
	}()

	return nil
}

// Stop shuts down the HTTP server, if one was started.
func (m *PrometheusManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.serving {
		m.log.Warn("PrometheusManager for the %s map is not running.", m.backend)
		return ErrPrometheusManagerNotRunning
	}

	m.serving = false
	if m.httpServer == nil {
		return nil
	}
	defer func() {
		m.httpServer = nil
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.httpServer.Shutdown(ctx); err != nil {
		m.log.Error("Failed to cleanly shutdown the HTTP server: %v", err)
		return err
	}

	return nil
}

// ObserveOperation increments the counter for op.
func (m *PrometheusManager) ObserveOperation(op string) {
	m.OperationsCounterVec.With(prometheus.Labels{"operation": op}).Inc()
}

// ObserveSize updates the entry, bucket and load gauges.
func (m *PrometheusManager) ObserveSize(length int, capacity int) {
	m.EntriesGauge.Set(float64(length))
	m.BucketsGauge.Set(float64(capacity))

	if capacity > 0 {
		m.LoadGauge.Set(float64(length) / float64(capacity))
	}
}

// ObserveExpand records the latency of an expansion.
func (m *PrometheusManager) ObserveExpand(from int, to int, latency time.Duration) {
	m.log.Debug("Map expanded from %d to %d buckets in %v.", from, to, latency)
	m.ExpandLatencyMicrosecondsHistogram.Observe(float64(latency.Microseconds()))
}
