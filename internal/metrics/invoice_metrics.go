package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result
const (
	ResultSuccess         = "success"
	ResultValidationError = "validation_error"
	ResultDatabaseError   = "database_error"
)

// InvoiceMetrics интерфейс для метрик операций над счетами и входа
type InvoiceMetrics interface {
	IncMutation(operation, result string)
	ObserveAmount(operation string, cents int64)
	IncAuthAttempt(result string)
	IncCacheInvalidation(path string, ok bool)
}

type invoiceMetrics struct {
	mutations     *prometheus.CounterVec
	amounts       *prometheus.HistogramVec
	authAttempts  *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewInvoiceMetrics создает метрики счетов и регистрирует их в registry
func NewInvoiceMetrics(registry prometheus.Registerer) InvoiceMetrics {
	factory := promauto.With(registry)

	return &invoiceMetrics{
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoice_mutations_total",
				Help: "The total number of invoice mutations by operation and result",
			},
			[]string{"operation", "result"},
		),
		amounts: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "invoice_amount_cents",
				Help:    "Stored invoice amounts distribution, in cents",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6), // 1$ .. 100000$
			},
			[]string{"operation"},
		),
		authAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "The total number of sign-in attempts by result",
			},
			[]string{"result"},
		),
		invalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "route_cache_invalidations_total",
				Help: "The total number of route cache invalidations",
			},
			[]string{"path", "ok"},
		),
	}
}

// IncMutation увеличивает счетчик операций над счетами
func (m *invoiceMetrics) IncMutation(operation, result string) {
	m.mutations.WithLabelValues(operation, result).Inc()
}

// ObserveAmount записывает сохраненную сумму счета
func (m *invoiceMetrics) ObserveAmount(operation string, cents int64) {
	m.amounts.WithLabelValues(operation).Observe(float64(cents))
}

// IncAuthAttempt увеличивает счетчик попыток входа
func (m *invoiceMetrics) IncAuthAttempt(result string) {
	m.authAttempts.WithLabelValues(result).Inc()
}

// IncCacheInvalidation увеличивает счетчик сбросов кеша маршрутов
func (m *invoiceMetrics) IncCacheInvalidation(path string, ok bool) {
	label := "true"
	if !ok {
		label = "false"
	}
	m.invalidations.WithLabelValues(path, label).Inc()
}

// NopInvoiceMetrics метрики-заглушка для тестов
type NopInvoiceMetrics struct{}

func (NopInvoiceMetrics) IncMutation(string, string) {}
func (NopInvoiceMetrics) ObserveAmount(string, int64) {}
func (NopInvoiceMetrics) IncAuthAttempt(string) {}
func (NopInvoiceMetrics) IncCacheInvalidation(string, bool) {}
