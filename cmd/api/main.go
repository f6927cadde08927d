package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/geoitems/docs/swagger"
	"github.com/ghuser/geoitems/pkg/app"
	"github.com/ghuser/geoitems/pkg/cache"
	"github.com/ghuser/geoitems/pkg/config"
	"github.com/ghuser/geoitems/pkg/database"
	"github.com/ghuser/geoitems/pkg/events"
	"github.com/ghuser/geoitems/pkg/httpx"
	"github.com/ghuser/geoitems/pkg/logger"
	"github.com/ghuser/geoitems/pkg/telemetry"
	itemApi "github.com/ghuser/geoitems/services/item/application/api"
)

// @title						geoitems API
// @version					1.0
// @description				CRUD API for geotagged items. Each item records its direction from a fixed reference point.
// @license.name				MIT
// @license.url				https://opensource.org/licenses/MIT
// @host						localhost:8080
// @BasePath					/api
// @schemes					http https
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{
		Config: cfg,
		Logger: log,
		Clock:  clockwork.NewRealClock(),
	}
	health := httpx.HealthChecks{}

	if cfg.DatabaseURL != "" {
		db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer db.Close()
		appConfig.Db = db
		health.Database = db
		log.Info("database pool connected")
	} else {
		log.Warn("DATABASE_URL is empty, items are kept in memory")
	}

	closer, err := setupPublisher(ctx, cfg, appConfig, &health)
	if err != nil {
		log.Error("failed to setup notifier", "error", err, "backend", cfg.NotifierBackend)
		os.Exit(1) //nolint:gocritic
	}
	if closer != nil {
		defer closer.Close() //nolint:errcheck
	}

	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		health.Redis = redisClient
		log.Info("redis connected")
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// setupPublisher wires the item.created transport selected by
// NOTIFIER_BACKEND into a and registers it with the health checks. The
// returned closer is nil when notifications are disabled.
func setupPublisher(ctx context.Context, cfg *config.Config, a *app.Application, health *httpx.HealthChecks) (io.Closer, error) {
	switch cfg.NotifierBackend {
	case config.NotifierKafka:
		pub := events.NewKafkaPublisher(cfg, a.Logger)
		a.Publisher = pub
		health.Events = pub
		a.Logger.Info("kafka publisher ready", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
		return pub, nil
	default:
		if cfg.DatabaseURL == "" {
			a.Logger.Warn("sql notifier needs DATABASE_URL, item.created notifications disabled")
			return nil, nil
		}
		bus, err := events.NewEventBusWithForwarder(cfg, a.Logger)
		if err != nil {
			return nil, err
		}
		if err := bus.StartForwarder(ctx); err != nil {
			_ = bus.Close()
			return nil, err
		}
		a.Publisher = bus
		health.Events = bus
		return bus, nil
	}
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	itemApi.ItemRoutes(r, a)
}
