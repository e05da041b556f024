package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Dhoini/invoice-dashboard/internal/api/rest"
	"github.com/Dhoini/invoice-dashboard/internal/api/rest/handlers"
	"github.com/Dhoini/invoice-dashboard/internal/api/rest/middleware"
	"github.com/Dhoini/invoice-dashboard/internal/auth"
	"github.com/Dhoini/invoice-dashboard/internal/cache"
	"github.com/Dhoini/invoice-dashboard/internal/config"
	"github.com/Dhoini/invoice-dashboard/internal/kafka"
	"github.com/Dhoini/invoice-dashboard/internal/metrics"
	"github.com/Dhoini/invoice-dashboard/internal/repository/postgres"
	"github.com/Dhoini/invoice-dashboard/internal/service"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App представляет собой контейнер для всех компонентов приложения
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Server   *rest.Server

	closers []func() error
}

// New подключает инфраструктуру и собирает HTTP сервер.
// Redis и Kafka необязательны: без адреса используются кеш в памяти и
// пустой издатель событий.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	// Prometheus
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	invoiceMetrics := metrics.NewInvoiceMetrics(a.Registry)
	httpMetrics := metrics.NewHTTPMetrics(a.Registry)

	// База данных
	pool, err := postgres.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	// Кеш маршрутов
	var routes cache.RouteCache
	if cfg.Redis.Addr != "" {
		redisCache, client, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, log)
		if err != nil {
			// Не фатально, но предупреждаем
			log.Warnw("Failed to initialize Redis cache, using in-memory route cache", "error", err)
			routes = cache.NewMemoryCache(cfg.Redis.TTL)
		} else {
			log.Infow("Redis route cache initialized", "addr", cfg.Redis.Addr)
			routes = redisCache
			a.closers = append(a.closers, client.Close)
		}
	} else {
		routes = cache.NewMemoryCache(cfg.Redis.TTL)
	}

	// Kafka
	var producer kafka.Producer = kafka.NoOpProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		p, err := kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
		} else {
			log.Infow("Kafka producer initialized", "topic", cfg.Kafka.Topic)
			producer = p
			a.closers = append(a.closers, p.Close)
		}
	}

	// Сессии
	secret, err := sessionSecret(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	tokens, err := auth.NewTokenManager(secret, cfg.Auth.SessionTTL)
	if err != nil {
		a.Close()
		return nil, err
	}
	authenticator := auth.NewAuthenticator(tokens, log.Named("auth"),
		auth.NewCredentialsProvider(postgres.NewPostgresUserRepository(pool)))

	// Сервисы
	invoiceService := service.NewInvoiceService(
		postgres.NewPostgresInvoiceRepository(pool, log),
		routes,
		producer,
		invoiceMetrics,
		log.Named("invoices"),
	)
	authService := service.NewAuthService(authenticator, invoiceMetrics, log.Named("auth"))

	router := rest.SetupRouter(log, a.Registry, httpMetrics, rest.Handlers{
		Invoices: handlers.NewInvoiceHandler(invoiceService, log),
		Auth:     handlers.NewAuthHandler(authService, cfg.Auth.CookieName, cfg.IsProduction(), log),
		Session:  middleware.NewSessionMiddleware(cfg.Auth.CookieName, tokens, log),
		DB:       pool,
	})
	a.Server = rest.NewServer(router, cfg.App, log)

	return a, nil
}

// Close освобождает ресурсы в обратном порядке
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func sessionSecret(cfg *config.Config, log *logger.Logger) ([]byte, error) {
	if cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret), nil
	}
	if cfg.IsProduction() {
		return nil, errors.New("AUTH_JWTSECRET must be set in production")
	}

	// Сессии не переживут перезапуск
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	log.Warnw("JWT secret is not set, using a random one")
	return []byte(hex.EncodeToString(buf)), nil
}
