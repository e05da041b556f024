package rest

import (
	"github.com/Dhoini/invoice-dashboard/internal/api/rest/handlers"
	"github.com/Dhoini/invoice-dashboard/internal/api/rest/middleware"
	"github.com/Dhoini/invoice-dashboard/internal/metrics"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers обработчики, которые подключаются к маршрутизатору
type Handlers struct {
	Invoices *handlers.InvoiceHandler
	Auth     *handlers.AuthHandler
	Session  *middleware.SessionMiddleware
	DB       handlers.Pinger
}

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(log *logger.Logger, registry *prometheus.Registry, httpMetrics *metrics.HTTPMetrics, h Handlers) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", handlers.HealthCheck(h.DB))

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	dashboard := r.Group("/dashboard", h.Session.RequireSession())
	{
		invoices := dashboard.Group("/invoices")
		{
			invoices.GET("", h.Invoices.ListInvoices)
			invoices.GET("/:id", h.Invoices.GetInvoice)
			invoices.POST("", h.Invoices.CreateInvoice)
			invoices.POST("/:id", h.Invoices.UpdateInvoice)
			invoices.PUT("/:id", h.Invoices.UpdateInvoice)
			// HTML формы умеют только POST
			invoices.POST("/:id/delete", h.Invoices.DeleteInvoice)
			invoices.DELETE("/:id", h.Invoices.DeleteInvoice)
		}
		dashboard.GET("/export/invoices.xlsx", h.Invoices.ExportInvoices)
	}

	return r
}
