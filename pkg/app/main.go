package app

import (
	"github.com/jonboulle/clockwork"

	"github.com/ghuser/geoitems/pkg/cache"
	"github.com/ghuser/geoitems/pkg/config"
	"github.com/ghuser/geoitems/pkg/database"
	"github.com/ghuser/geoitems/pkg/events"
	"github.com/ghuser/geoitems/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config *config.Config
	Db     *database.Database
	Logger logger.Logger
	// Publisher carries item events; it is the EventBus or a KafkaPublisher
	// depending on NOTIFIER_BACKEND.
	Publisher events.Publisher
	// Redis is nil when CACHE_ENABLED=false.
	Redis *cache.RedisClient
	// Clock is the source of the validation instant; nil means the wall clock.
	Clock clockwork.Clock
}

// IsProduction reports whether client-facing 5xx messages must be masked.
func (a *Application) IsProduction() bool {
	return a.Config != nil && a.Config.Environment == config.EnvProduction
}
