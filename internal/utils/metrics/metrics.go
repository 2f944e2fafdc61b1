// File: internal/utils/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики для мониторинга сервисов
var (
	// RequestsTotal счетчик общего количества запросов
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "withfy_requests_total",
		Help: "The total number of requests",
	})

	// ResponsesTotal счетчик ответов по статусам
	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "withfy_responses_total",
		Help: "The total number of responses by status code",
	}, []string{"status"})

	// RequestDuration гистограмма времени обработки запросов
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "withfy_request_duration_seconds",
		Help:    "The request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// LoginAttemptsTotal счетчик попыток входа
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "withfy_login_attempts_total",
		Help: "The total number of login attempts",
	}, []string{"status"})

	// TokenRefreshTotal счетчик обновлений токенов
	TokenRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "withfy_token_refresh_total",
		Help: "The total number of token refreshes",
	}, []string{"status"})

	// GatewayRejectionsTotal счетчик запросов, отклоненных фильтром на шлюзе
	GatewayRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "withfy_gateway_rejections_total",
		Help: "The total number of requests rejected by the gateway auth filter",
	}, []string{"reason"})
)
