// Package metrics 提供 Prometheus helper，包含审批工作流的常用指标模板
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数（按方法、路径、状态码）
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 工作流状态迁移计数（按实体类型、动作、结果）
	TransitionsTotal *prometheus.CounterVec
	// 状态迁移耗时（同步阶段）
	TransitionDuration *prometheus.HistogramVec
	// 通知派发计数（按结果）
	NotificationsTotal *prometheus.CounterVec
	// 审计条目写入计数
	AuditEntriesTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investplatform",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "investplatform",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investplatform",
			Subsystem: serviceName,
			Name:      "workflow_transitions_total",
			Help:      "Workflow transitions by entity type, action and result",
		}, []string{"entity", "action", "result"}),
		TransitionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "investplatform",
			Subsystem: serviceName,
			Name:      "workflow_transition_duration_seconds",
			Help:      "Synchronous transition phase latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "action"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "investplatform",
			Subsystem: serviceName,
			Name:      "notifications_total",
			Help:      "Dispatched notifications by result",
		}, []string{"result"}),
		AuditEntriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "investplatform",
			Subsystem: serviceName,
			Name:      "audit_entries_total",
			Help:      "Audit entries written",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TransitionsTotal,
		m.TransitionDuration,
		m.NotificationsTotal,
		m.AuditEntriesTotal,
	)

	return m
}

// Handler 返回 Prometheus 指标的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware 返回记录 HTTP 指标的 gin 中间件
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveTransition 记录一次状态迁移
func (m *Metrics) ObserveTransition(entity, action, result string, elapsed time.Duration) {
	m.TransitionsTotal.WithLabelValues(entity, action, result).Inc()
	m.TransitionDuration.WithLabelValues(entity, action).Observe(elapsed.Seconds())
}
