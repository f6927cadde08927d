package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/geoitems/pkg/app"
	"github.com/ghuser/geoitems/pkg/cache"
	"github.com/ghuser/geoitems/pkg/config"
	"github.com/ghuser/geoitems/pkg/database"
	"github.com/ghuser/geoitems/pkg/events"
	"github.com/ghuser/geoitems/pkg/logger"
	"github.com/ghuser/geoitems/pkg/telemetry"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	itemEvents "github.com/ghuser/geoitems/services/item/domain/events"
)

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

	log := logger.New(cfg).With("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{Config: cfg, Logger: log}

	if cfg.DatabaseURL != "" {
		db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer db.Close()
		appConfig.Db = db
		log.Info("database pool connected")
	}

	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		log.Info("redis connected")
	}

	sub, closer, err := newSubscriber(cfg, log)
	if err != nil {
		log.Error("failed to setup subscriber", "error", err, "backend", cfg.NotifierBackend)
		os.Exit(1) //nolint:gocritic
	}
	// Closing waits for in-flight handlers.
	defer closer.Close() //nolint:errcheck

	if err := registerSubscribers(ctx, sub, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()
	log.Info("shutting down worker...")
}

// newSubscriber returns the item.created consumer for NOTIFIER_BACKEND.
func newSubscriber(cfg *config.Config, log logger.Logger) (events.Subscriber, io.Closer, error) {
	if cfg.NotifierBackend == config.NotifierKafka {
		sub := events.NewKafkaSubscriber(cfg, log)
		return sub, sub, nil
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("sql notifier backend needs DATABASE_URL")
	}
	bus, err := events.NewEventBus(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return bus, bus, nil
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, sub events.Subscriber, a *app.Application) error {
	errCh, err := sub.Subscribe(ctx, itemEvents.TopicItemCreated, handleItemCreated(a, appsvcs.New(a)))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", itemEvents.TopicItemCreated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{itemEvents.TopicItemCreated})
	return nil
}

// handleItemCreated logs each item.created event and, when Redis is
// enabled, warms the read model by loading the item through the service.
// Handlers must be idempotent: transports retry up to 3 times on failure.
func handleItemCreated(a *app.Application, svcs *appsvcs.Services) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt itemEvents.ItemCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// Malformed payloads never succeed on retry.
			a.Logger.WarnContext(ctx, "discarding malformed item.created event",
				"message_uuid", msg.UUID, "error", err)
			return nil
		}

		a.Logger.InfoContext(ctx, "item created",
			"item_id", evt.ItemID, "name", evt.Name, "event_id", evt.EventID.String())

		if a.Redis == nil {
			return nil
		}
		if _, err := svcs.Item.GetByID(ctx, evt.ItemID); err != nil {
			if errors.Is(err, itemdomain.ErrItemNotFound) || errors.Is(err, itemdomain.ErrInvalidItemID) {
				a.Logger.WarnContext(ctx, "item.created for unknown item", "item_id", evt.ItemID)
				return nil
			}
			return err
		}
		return nil
	}
}
