package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Collector accumulates in-process request counters. One instance is
// shared between the middleware and the /metrics handler.
type Collector struct {
	mu            sync.RWMutex
	requestCount  int64
	errorCount    int64
	statusCodes   map[string]int64
	endpoints     map[string]int64
	totalDuration time.Duration
	startTime     time.Time
	lastRequest   time.Time

	healthMu sync.RWMutex
	checks   map[string]HealthCheckFunc
}

type HealthCheckFunc func(ctx context.Context) error

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

func NewCollector() *Collector {
	return &Collector{
		statusCodes: make(map[string]int64),
		endpoints:   make(map[string]int64),
		startTime:   time.Now(),
		checks:      make(map[string]HealthCheckFunc),
	}
}

func (m *Collector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		m.mu.Lock()
		m.requestCount++
		m.totalDuration += duration
		m.lastRequest = time.Now()
		if statusCode >= 400 {
			m.errorCount++
		}
		m.statusCodes[http.StatusText(statusCode)]++
		m.endpoints[endpoint]++
		m.mu.Unlock()
	}
}

func (m *Collector) RegisterHealthCheck(name string, checkFunc HealthCheckFunc) {
	m.healthMu.Lock()
	defer m.healthMu.Unlock()
	m.checks[name] = checkFunc
}

func (m *Collector) runHealthChecks() map[string]HealthCheck {
	m.healthMu.RLock()
	defer m.healthMu.RUnlock()

	results := make(map[string]HealthCheck, len(m.checks))
	for name, checkFunc := range m.checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		status := "healthy"
		message := ""
		if err := checkFunc(ctx); err != nil {
			status = "unhealthy"
			message = err.Error()
		}
		cancel()

		results[name] = HealthCheck{
			Name:    name,
			Status:  status,
			Message: message,
			LastRun: time.Now(),
		}
	}
	return results
}

func (m *Collector) MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		m.mu.RLock()
		application := gin.H{
			"request_count":  m.requestCount,
			"error_count":    m.errorCount,
			"status_codes":   copyCounts(m.statusCodes),
			"endpoint_calls": copyCounts(m.endpoints),
			"last_request":   m.lastRequest,
		}
		if m.requestCount > 0 {
			application["avg_request_duration"] = (m.totalDuration / time.Duration(m.requestCount)).String()
		}
		m.mu.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"application": application,
			"system": gin.H{
				"uptime":          time.Since(m.startTime).String(),
				"goroutine_count": runtime.NumGoroutine(),
				"alloc_mb":        memStats.Alloc / 1024 / 1024,
				"num_gc":          memStats.NumGC,
				"go_version":      runtime.Version(),
			},
			"timestamp": time.Now(),
		})
	}
}

func (m *Collector) HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := m.runHealthChecks()

		overallStatus := "healthy"
		for _, check := range checks {
			if check.Status != "healthy" {
				overallStatus = "unhealthy"
				break
			}
		}

		status := http.StatusOK
		if overallStatus != "healthy" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":    overallStatus,
			"timestamp": time.Now(),
			"checks":    checks,
			"uptime":    time.Since(m.startTime).String(),
		})
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
